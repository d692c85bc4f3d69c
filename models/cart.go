package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems sums line quantities. Requires Items to be preloaded.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount is recomputed from the current lines on every call rather
// than cached. Requires Items.Medicine to be preloaded.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// NeedsPrescription reports whether any line's medicine is rx-required.
func (c *Cart) NeedsPrescription() bool {
	for _, item := range c.Items {
		if item.Medicine.RxRequired {
			return true
		}
	}
	return false
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     uint      `gorm:"uniqueIndex:idx_cart_medicine;not null" json:"cart_id"`
	MedicineID uint      `gorm:"uniqueIndex:idx_cart_medicine;not null" json:"medicine_id"`
	Medicine   Medicine  `json:"medicine"`
	Quantity   int       `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Medicine.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
