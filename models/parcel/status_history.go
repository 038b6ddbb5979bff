package parcel

import (
	"time"
)

// ParcelStatusHistory is an append-only record of every status a parcel has
// held, including the initial pending record written at creation. Rows are
// never updated or deleted while the parcel exists.
type ParcelStatusHistory struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for parcel relationship
	ParcelID uint   `gorm:"not null;index" json:"parcel_id"`
	Parcel   Parcel `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE" json:"-"`

	Status    ParcelStatus `gorm:"size:30;not null" json:"status"`
	Location  *string      `gorm:"type:text" json:"location"`
	Notes     *string      `gorm:"type:text" json:"notes"`
	Timestamp time.Time    `gorm:"autoCreateTime;column:timestamp" json:"timestamp"`
}

// TableName sets the table name for the ParcelStatusHistory model
func (ParcelStatusHistory) TableName() string {
	return "parcel_status_history"
}
