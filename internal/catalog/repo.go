package catalog

import (
	"context"

	"github.com/avdiagram/catalog-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes catalog persistence operations for device types and
// manufacturers.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDeviceType inserts a new device type row.
func (r *Repository) CreateDeviceType(ctx context.Context, row *models.DeviceType) (*models.DeviceType, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindDeviceTypeByID loads a device type by its UUID.
func (r *Repository) FindDeviceTypeByID(ctx context.Context, id uuid.UUID) (*models.DeviceType, error) {
	var row models.DeviceType
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindDeviceTypeByName retrieves the device type matching the exact name.
func (r *Repository) FindDeviceTypeByName(ctx context.Context, name string) (*models.DeviceType, error) {
	var row models.DeviceType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListDeviceTypes returns all device types ordered by name ascending.
func (r *Repository) ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error) {
	var rows []models.DeviceType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteDeviceType removes a device type row by id.
func (r *Repository) DeleteDeviceType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DeviceType{}, "id = ?", id).Error
}

// CountDeviceTypes returns the number of device type rows.
func (r *Repository) CountDeviceTypes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DeviceType{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateManufacturer inserts a new manufacturer row.
func (r *Repository) CreateManufacturer(ctx context.Context, row *models.Manufacturer) (*models.Manufacturer, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindManufacturerByID loads a manufacturer by its UUID.
func (r *Repository) FindManufacturerByID(ctx context.Context, id uuid.UUID) (*models.Manufacturer, error) {
	var row models.Manufacturer
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindManufacturerByName retrieves the manufacturer matching the exact name.
func (r *Repository) FindManufacturerByName(ctx context.Context, name string) (*models.Manufacturer, error) {
	var row models.Manufacturer
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListManufacturers returns all manufacturers ordered by name ascending.
func (r *Repository) ListManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	var rows []models.Manufacturer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteManufacturer removes a manufacturer row by id.
func (r *Repository) DeleteManufacturer(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Manufacturer{}, "id = ?", id).Error
}

// CountManufacturers returns the number of manufacturer rows.
func (r *Repository) CountManufacturers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Manufacturer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
