package auth

// RegisterRequest carries the signup form fields.
type RegisterRequest struct {
	Username  string `json:"username"`
	LegalName string `json:"legal_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
