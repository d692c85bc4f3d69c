package models

import "time"

// Prescription links an uploaded document to the order it was supplied
// for. Created during checkout only when the cart held rx-required lines.
type Prescription struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	OrderID   *uint     `gorm:"uniqueIndex" json:"order_id"` // At most one prescription per order
	File      string    `gorm:"not null" json:"file"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
