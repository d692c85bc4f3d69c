package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"size:100;unique;not null" json:"name"`
	Slug      string     `gorm:"size:120;uniqueIndex" json:"slug"`
	Medicines []Medicine `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"medicines,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeSave derives the slug from the name when none was supplied.
func (cat *Category) BeforeSave(tx *gorm.DB) error {
	if cat.Slug == "" {
		cat.Slug = slug.Make(cat.Name)
	}
	return nil
}
