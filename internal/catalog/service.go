package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avdiagram/catalog-backend/pkg/db"
	"github.com/avdiagram/catalog-backend/pkg/db/models"
	pkgerrors "github.com/avdiagram/catalog-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxNameLength = 64

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type catalogRepository interface {
	CreateDeviceType(ctx context.Context, row *models.DeviceType) (*models.DeviceType, error)
	FindDeviceTypeByID(ctx context.Context, id uuid.UUID) (*models.DeviceType, error)
	FindDeviceTypeByName(ctx context.Context, name string) (*models.DeviceType, error)
	ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error)
	DeleteDeviceType(ctx context.Context, id uuid.UUID) error
	CountDeviceTypes(ctx context.Context) (int64, error)

	CreateManufacturer(ctx context.Context, row *models.Manufacturer) (*models.Manufacturer, error)
	FindManufacturerByID(ctx context.Context, id uuid.UUID) (*models.Manufacturer, error)
	FindManufacturerByName(ctx context.Context, name string) (*models.Manufacturer, error)
	ListManufacturers(ctx context.Context) ([]models.Manufacturer, error)
	DeleteManufacturer(ctx context.Context, id uuid.UUID) error
	CountManufacturers(ctx context.Context) (int64, error)
}

// Service exposes the catalog maintenance operations.
type Service interface {
	CreateDeviceType(ctx context.Context, req CreateDeviceTypeRequest) (*DeviceTypeDTO, error)
	DeleteDeviceType(ctx context.Context, id uuid.UUID) (*DeviceTypeDTO, error)
	ListDeviceTypes(ctx context.Context) ([]DeviceTypeDTO, error)

	CreateManufacturer(ctx context.Context, req CreateManufacturerRequest) (*ManufacturerDTO, error)
	DeleteManufacturer(ctx context.Context, id uuid.UUID) (*ManufacturerDTO, error)
	ListManufacturers(ctx context.Context) ([]ManufacturerDTO, error)

	Dashboard(ctx context.Context) (*DashboardSummary, error)
}

type service struct {
	repo catalogRepository
}

// NewService constructs a catalog service with the provided repository.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateDeviceType(ctx context.Context, req CreateDeviceTypeRequest) (*DeviceTypeDTO, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = models.DefaultDeviceTypeColor
	} else if !hexColorRe.MatchString(color) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color must be a hex token like #3366FF")
	}

	if _, err := s.repo.FindDeviceTypeByName(ctx, name); err == nil {
		return nil, duplicateDeviceType(name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check device type name")
	}

	row := &models.DeviceType{
		Name:      name,
		Color:     color,
		Thumbnail: req.Thumbnail,
	}
	created, err := s.repo.CreateDeviceType(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_device_types_name") {
			return nil, duplicateDeviceType(name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create device type")
	}
	return deviceTypeFromModel(created), nil
}

func (s *service) DeleteDeviceType(ctx context.Context, id uuid.UUID) (*DeviceTypeDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no item selected")
	}

	row, err := s.repo.FindDeviceTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "device type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup device type")
	}

	if err := s.repo.DeleteDeviceType(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete device type")
	}
	return deviceTypeFromModel(row), nil
}

func (s *service) ListDeviceTypes(ctx context.Context) ([]DeviceTypeDTO, error) {
	rows, err := s.repo.ListDeviceTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list device types")
	}
	return deviceTypesFromModels(rows), nil
}

func (s *service) CreateManufacturer(ctx context.Context, req CreateManufacturerRequest) (*ManufacturerDTO, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindManufacturerByName(ctx, name); err == nil {
		return nil, duplicateManufacturer(name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check manufacturer name")
	}

	created, err := s.repo.CreateManufacturer(ctx, &models.Manufacturer{Name: name})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_manufacturers_name") {
			return nil, duplicateManufacturer(name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create manufacturer")
	}
	return manufacturerFromModel(created), nil
}

func (s *service) DeleteManufacturer(ctx context.Context, id uuid.UUID) (*ManufacturerDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no item selected")
	}

	row, err := s.repo.FindManufacturerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "manufacturer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup manufacturer")
	}

	if err := s.repo.DeleteManufacturer(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete manufacturer")
	}
	return manufacturerFromModel(row), nil
}

func (s *service) ListManufacturers(ctx context.Context) ([]ManufacturerDTO, error) {
	rows, err := s.repo.ListManufacturers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list manufacturers")
	}
	return manufacturersFromModels(rows), nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	deviceTypeCount, err := s.repo.CountDeviceTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count device types")
	}
	manufacturerCount, err := s.repo.CountManufacturers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count manufacturers")
	}
	deviceTypes, err := s.repo.ListDeviceTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list device types")
	}
	manufacturers, err := s.repo.ListManufacturers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list manufacturers")
	}
	return &DashboardSummary{
		DeviceTypeCount:   deviceTypeCount,
		ManufacturerCount: manufacturerCount,
		DeviceTypes:       deviceTypesFromModels(deviceTypes),
		Manufacturers:     manufacturersFromModels(manufacturers),
	}, nil
}

// normalizeName trims and validates a catalog name. Checks run in order so the
// first failure wins: blank before length, length before duplicates.
func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name must be 64 characters or less")
	}
	return name, nil
}

func duplicateDeviceType(name string) error {
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("device type '%s' already exists", name))
}

func duplicateManufacturer(name string) error {
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("manufacturer '%s' already exists", name))
}
