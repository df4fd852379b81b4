package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manufacturer is a global catalog row with a namespace independent from
// device types.
type Manufacturer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_manufacturers_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Manufacturer) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
