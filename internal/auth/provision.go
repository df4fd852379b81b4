package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/avdiagram/catalog-backend/internal/users"
	"github.com/avdiagram/catalog-backend/pkg/config"
	"github.com/avdiagram/catalog-backend/pkg/db"
	"github.com/avdiagram/catalog-backend/pkg/enums"
	pkgerrors "github.com/avdiagram/catalog-backend/pkg/errors"
	"github.com/avdiagram/catalog-backend/pkg/security"
	"gorm.io/gorm"
)

// ProvisionSuperAdminRequest contains the credentials for the operator-driven
// super admin provisioning flow.
type ProvisionSuperAdminRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProvisionService handles creating or re-keying super admin users.
type ProvisionService interface {
	ProvisionSuperAdmin(ctx context.Context, req ProvisionSuperAdminRequest) (*users.UserDTO, error)
}

// ProvisionServiceParams names the dependencies for the provisioning flow.
type ProvisionServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type provisionService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewProvisionService builds a super admin provisioning service.
func NewProvisionService(params ProvisionServiceParams) (ProvisionService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &provisionService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// ProvisionSuperAdmin creates the named super admin, or resets the password
// and re-activates the account when the username already exists.
func (s *provisionService) ProvisionSuperAdmin(ctx context.Context, req ProvisionSuperAdminRequest) (*users.UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(username) > 64 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username must be 64 characters or less")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var result *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		existing, err := userRepo.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}

		if existing != nil {
			if existing.Role != enums.RoleSuperAdmin {
				return pkgerrors.New(pkgerrors.CodeConflict, "username belongs to a non-admin account")
			}
			if err := userRepo.UpdateCredentials(ctx, existing.ID, passwordHash); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update credentials")
			}
			existing.PasswordHash = passwordHash
			result = users.FromModel(existing)
			return nil
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			PasswordHash: passwordHash,
			Role:         enums.RoleSuperAdmin,
			IsActive:     boolRef(true),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		result = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func boolRef(v bool) *bool {
	return &v
}
