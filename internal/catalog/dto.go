package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/avdiagram/catalog-backend/pkg/db/models"
)

// DeviceTypeDTO is the transport shape for a device type row.
type DeviceTypeDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Thumbnail *string   `json:"thumbnail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ManufacturerDTO is the transport shape for a manufacturer row.
type ManufacturerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDeviceTypeRequest captures the fields accepted when adding a device type.
type CreateDeviceTypeRequest struct {
	Name      string  `json:"name" validate:"required,max=64"`
	Color     string  `json:"color" validate:"omitempty,hexcolor"`
	Thumbnail *string `json:"thumbnail,omitempty" validate:"omitempty,max=128"`
}

// CreateManufacturerRequest captures the fields accepted when adding a manufacturer.
type CreateManufacturerRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// DashboardSummary carries both listings plus row counts for the landing view.
type DashboardSummary struct {
	DeviceTypeCount   int64             `json:"device_type_count"`
	ManufacturerCount int64             `json:"manufacturer_count"`
	DeviceTypes       []DeviceTypeDTO   `json:"device_types"`
	Manufacturers     []ManufacturerDTO `json:"manufacturers"`
}

func deviceTypeFromModel(m *models.DeviceType) *DeviceTypeDTO {
	if m == nil {
		return nil
	}
	return &DeviceTypeDTO{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		Thumbnail: m.Thumbnail,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func manufacturerFromModel(m *models.Manufacturer) *ManufacturerDTO {
	if m == nil {
		return nil
	}
	return &ManufacturerDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func deviceTypesFromModels(rows []models.DeviceType) []DeviceTypeDTO {
	out := make([]DeviceTypeDTO, len(rows))
	for i := range rows {
		out[i] = *deviceTypeFromModel(&rows[i])
	}
	return out
}

func manufacturersFromModels(rows []models.Manufacturer) []ManufacturerDTO {
	out := make([]ManufacturerDTO, len(rows))
	for i := range rows {
		out[i] = *manufacturerFromModel(&rows[i])
	}
	return out
}
