package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	internalauth "github.com/avdiagram/catalog-backend/internal/auth"
	"github.com/avdiagram/catalog-backend/internal/catalog"
	"github.com/avdiagram/catalog-backend/internal/users"
	pkgAuth "github.com/avdiagram/catalog-backend/pkg/auth"
	"github.com/avdiagram/catalog-backend/pkg/config"
	"github.com/avdiagram/catalog-backend/pkg/db/models"
	"github.com/avdiagram/catalog-backend/pkg/enums"
	"github.com/avdiagram/catalog-backend/pkg/security"
)

type fakeSessionManager struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: map[string]string{}}
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := "refresh-" + accessID
	f.sessions[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, oldAccessID)
	newID := uuid.NewString()
	token := "refresh-" + newID
	f.sessions[newID] = token
	return newID, token, nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accessID)
	return nil
}

func (f *fakeSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[accessID]
	return ok, nil
}

func newTestRouter(t *testing.T) (http.Handler, *fakeSessionManager, config.JWTConfig) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.DeviceType{}, &models.Manufacturer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	hash, err := security.HashPassword("super-secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := gdb.Create(&models.User{
		Username:     "root",
		PasswordHash: hash,
		Role:         enums.RoleSuperAdmin,
		IsActive:     true,
	}).Error; err != nil {
		t.Fatalf("seed superadmin: %v", err)
	}

	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "catalog",
		ExpirationMinutes: 30,
		CookieName:        "catalog_session",
	}
	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "0"},
		JWT: jwtCfg,
	}

	sessionMgr := newFakeSessionManager()

	authSvc, err := internalauth.NewService(internalauth.ServiceParams{
		UserRepo:       users.NewRepository(gdb),
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
	})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(gdb))
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}

	router := NewRouter(Params{
		Config:         cfg,
		AuthService:    authSvc,
		CatalogService: catalogSvc,
		SessionManager: sessionMgr,
	})
	return router, sessionMgr, jwtCfg
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"root","password":"super-secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.Code, resp.Body.String())
	}
	token := resp.Header().Get("X-Catalog-Token")
	if token == "" {
		t.Fatalf("expected access token header")
	}
	return token
}

func TestRouterLoginAndCatalogFlow(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := login(t, router)

	// dashboard starts empty
	req := httptest.NewRequest(http.MethodGet, "/api/super-admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", resp.Code, resp.Body.String())
	}

	// add a device type
	req = httptest.NewRequest(http.MethodPost, "/api/super-admin/v1/device-types", bytes.NewReader([]byte(`{"name":"Router"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create device type: %d %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Data struct {
			DeviceType struct {
				ID uuid.UUID `json:"id"`
			} `json:"device_type"`
			Notice string `json:"notice"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.Data.Notice != "device type 'Router' added" {
		t.Fatalf("unexpected notice %q", created.Data.Notice)
	}

	// duplicate is rejected
	req = httptest.NewRequest(http.MethodPost, "/api/super-admin/v1/device-types", bytes.NewReader([]byte(`{"name":"Router"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", resp.Code)
	}

	// list shows the row
	req = httptest.NewRequest(http.MethodGet, "/api/super-admin/v1/device-types/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("list device types: %d", resp.Code)
	}

	// delete it
	req = httptest.NewRequest(http.MethodDelete, "/api/super-admin/v1/device-types/"+created.Data.DeviceType.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete device type: %d %s", resp.Code, resp.Body.String())
	}
}

func TestRouterRejectsAnonymous(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/super-admin/v1/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRouterRejectsStandardRole(t *testing.T) {
	router, sessionMgr, jwtCfg := newTestRouter(t)

	accessID := uuid.NewString()
	if _, err := sessionMgr.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	token, err := pkgAuth.MintAccessToken(jwtCfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "viewer",
		Role:     enums.RoleStandard,
		JTI:      accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/super-admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestRouterLogoutEndsSession(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", resp.Code, resp.Body.String())
	}

	// the revoked session can no longer reach guarded routes
	req = httptest.NewRequest(http.MethodGet, "/api/super-admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.Code)
	}
}

func TestRouterHealthLive(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
