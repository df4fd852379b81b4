package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avdiagram/catalog-backend/api/middleware"
	"github.com/avdiagram/catalog-backend/api/responses"
	"github.com/avdiagram/catalog-backend/api/validators"
	"github.com/avdiagram/catalog-backend/internal/catalog"
	pkgerrors "github.com/avdiagram/catalog-backend/pkg/errors"
	"github.com/avdiagram/catalog-backend/pkg/logger"
)

type deviceTypeCreateResponse struct {
	DeviceType *catalog.DeviceTypeDTO `json:"device_type"`
	Notice     string                 `json:"notice"`
}

type deviceTypeListResponse struct {
	DeviceTypes []catalog.DeviceTypeDTO `json:"device_types"`
}

type manufacturerCreateResponse struct {
	Manufacturer *catalog.ManufacturerDTO `json:"manufacturer"`
	Notice       string                   `json:"notice"`
}

type manufacturerListResponse struct {
	Manufacturers []catalog.ManufacturerDTO `json:"manufacturers"`
}

type deleteResponse struct {
	Notice string `json:"notice"`
}

func parsePathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "no item selected")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "no item selected")
	}
	return id, nil
}

// logCatalogChange records who changed what for the audit trail.
func logCatalogChange(ctx context.Context, logg *logger.Logger, event, name string) {
	if logg == nil {
		return
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"actor": middleware.UsernameFromContext(ctx),
		"name":  name,
	})
	logg.Info(ctx, event)
}

// Dashboard reports catalog row counts for the admin landing view.
func Dashboard(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		summary, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// DeviceTypeList returns all device types ordered by name.
func DeviceTypeList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.ListDeviceTypes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deviceTypeListResponse{DeviceTypes: rows})
	}
}

// DeviceTypeCreate adds a device type to the catalog.
func DeviceTypeCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body catalog.CreateDeviceTypeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateDeviceType(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logCatalogChange(r.Context(), logg, "catalog.device_type.added", created.Name)
		responses.WriteSuccessStatus(w, http.StatusCreated, deviceTypeCreateResponse{
			DeviceType: created,
			Notice:     fmt.Sprintf("device type '%s' added", created.Name),
		})
	}
}

// DeviceTypeDelete removes a device type from the catalog.
func DeviceTypeDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "deviceTypeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.DeleteDeviceType(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logCatalogChange(r.Context(), logg, "catalog.device_type.deleted", deleted.Name)
		responses.WriteSuccess(w, deleteResponse{
			Notice: fmt.Sprintf("device type '%s' deleted", deleted.Name),
		})
	}
}

// ManufacturerList returns all manufacturers ordered by name.
func ManufacturerList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.ListManufacturers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, manufacturerListResponse{Manufacturers: rows})
	}
}

// ManufacturerCreate adds a manufacturer to the catalog.
func ManufacturerCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body catalog.CreateManufacturerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateManufacturer(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logCatalogChange(r.Context(), logg, "catalog.manufacturer.added", created.Name)
		responses.WriteSuccessStatus(w, http.StatusCreated, manufacturerCreateResponse{
			Manufacturer: created,
			Notice:       fmt.Sprintf("manufacturer '%s' added", created.Name),
		})
	}
}

// ManufacturerDelete removes a manufacturer from the catalog.
func ManufacturerDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parsePathID(r, "manufacturerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.DeleteManufacturer(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logCatalogChange(r.Context(), logg, "catalog.manufacturer.deleted", deleted.Name)
		responses.WriteSuccess(w, deleteResponse{
			Notice: fmt.Sprintf("manufacturer '%s' deleted", deleted.Name),
		})
	}
}
