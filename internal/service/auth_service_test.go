package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) *AuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-service"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 8

	return NewAuthService(cfg, repository.NewTenantRepository(db))
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := setupAuthServiceTest(t)

	tenant, err := svc.Register("seller@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if tenant.ID == 0 || tenant.PasswordHash == "password123" {
		t.Fatalf("password must be hashed: %+v", tenant)
	}

	logged, token, expiresAt, err := svc.Login("seller@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != tenant.ID || token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("unexpected login result: %v %v", token, expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.TenantID != tenant.ID || claims.Role != "seller" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	if _, err := svc.Register("seller@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, _, err := svc.Login("seller@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := setupAuthServiceTest(t)

	if _, err := svc.Register("seller@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
	if _, err := svc.Register("not-an-email", "password123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}

	if _, err := svc.Register("seller@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register("SELLER@example.com", "password123"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestAuthChangePasswordInvalidatesTokenVersion(t *testing.T) {
	svc := setupAuthServiceTest(t)

	tenant, err := svc.Register("seller@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(tenant.ID, "wrong", "newpassword123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(tenant.ID, "password123", "newpassword123"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	reloaded, err := svc.tenantRepo.GetByID(tenant.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload tenant: %v", err)
	}
	if reloaded.TokenVersion != tenant.TokenVersion+1 || reloaded.TokenInvalidBefore == nil {
		t.Fatalf("token version not bumped: %+v", reloaded)
	}
	if _, _, _, err := svc.Login("seller@example.com", "newpassword123"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
