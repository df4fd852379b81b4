package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultDeviceTypeColor is applied when a device type is created without an
// explicit color token.
const DefaultDeviceTypeColor = "#3366FF"

// DeviceType is a global catalog row naming a class of devices.
type DeviceType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_device_types_name"`
	Color     string    `gorm:"type:varchar(7);not null;default:'#3366FF'"`
	Thumbnail *string   `gorm:"type:varchar(128)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *DeviceType) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
