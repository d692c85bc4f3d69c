package models

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Medicine is a catalog product. Stock is only consumed at checkout, via
// a guarded UPDATE that refuses to go below zero. RxRequired marks items
// that need a prescription upload before they can be ordered.
type Medicine struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Slug        string          `gorm:"size:220;uniqueIndex" json:"slug"`
	Brand       string          `gorm:"size:120" json:"brand"`
	Description string          `gorm:"type:text" json:"description"`
	CategoryID  *uint           `gorm:"index" json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	RxRequired  bool            `gorm:"default:false" json:"rx_required"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (m *Medicine) BeforeSave(tx *gorm.DB) error {
	if m.Slug == "" {
		m.Slug = slug.Make(m.Name)
	}
	return nil
}
