package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"    // Created at checkout, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by staff
	OrderStatusPacked    OrderStatus = "packed"    // Packed and ready for dispatch
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the order
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by staff

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusCOD     PaymentStatus = "cod" // Cash on delivery, the only path checkout takes
)

// Order is created atomically at checkout and is immutable afterwards
// except for OrderStatus, which staff may move between the enumerated
// values. TotalAmount is the sum of the line snapshots at creation time
// and is never recomputed.
type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	User          User            `json:"user,omitempty"`
	AddressID     *uint           `json:"address_id"`
	Address       *Address        `gorm:"constraint:OnDelete:SET NULL" json:"address,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total_amount"`
	PaymentStatus PaymentStatus   `gorm:"type:VARCHAR(20);default:'cod'" json:"payment_status"`
	OrderStatus   OrderStatus     `gorm:"type:VARCHAR(20);default:'placed'" json:"order_status"`
	Note          string          `gorm:"size:255" json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderItem freezes the unit price at the moment of checkout; later
// catalog price changes never touch it. MedicineID is nullable so that
// deleting a medicine keeps the order line intact.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint            `gorm:"index;not null" json:"order_id"`
	MedicineID *uint           `json:"medicine_id"`
	Medicine   *Medicine       `gorm:"constraint:OnDelete:SET NULL" json:"medicine,omitempty"`
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
