package models

import "time"

// Address is a user's shipping address. At most one address per user may
// carry IsDefault at any time; the address controllers clear the flag on
// the user's other rows in the same transaction that sets it.
type Address struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Line1     string    `gorm:"size:255;not null" json:"line1"`
	Line2     string    `gorm:"size:255" json:"line2"`
	City      string    `gorm:"size:100" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	Pincode   string    `gorm:"size:10" json:"pincode"`
	Country   string    `gorm:"size:100;default:'India'" json:"country"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
