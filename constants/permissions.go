package constants

// Permission strings carried in JWT claims.
const (
	// PermAny matches any authenticated user.
	PermAny = "any"

	// PermCustomer lets a user book and track their own parcels.
	PermCustomer = "customer.has_full_access"

	// PermOperator lets depot staff update parcel statuses and manage
	// transport runs.
	PermOperator = "operator.has_full_access"
)

// DefaultUserPermissions are granted to newly registered users.
var DefaultUserPermissions = []string{PermCustomer}
