package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func TestSyncAdminTenantsGrantsSeededAdmin(t *testing.T) {
	db := setupAuthzTest(t)

	if err := models.InitDefaultAdmin("", ""); err != nil {
		t.Fatalf("InitDefaultAdmin: %v", err)
	}
	var admin models.Tenant
	if err := db.Where("role = ?", constants.TenantRoleAdmin).First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	seller := models.Tenant{Email: "seller@mall.kr", PasswordHash: "x", Role: constants.TenantRoleSeller, Status: constants.TenantStatusActive}
	if err := db.Create(&seller).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}

	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if err := Bootstrap(svc); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := SyncAdminTenants(svc, db); err != nil {
		t.Fatalf("SyncAdminTenants: %v", err)
	}

	allowed, err := svc.EnforceTenant(admin.ID, "/api/v1/admin/tenants", "GET")
	if err != nil {
		t.Fatalf("EnforceTenant(admin): %v", err)
	}
	if !allowed {
		t.Fatal("seeded admin must pass admin route enforcement")
	}

	allowed, err = svc.EnforceTenant(seller.ID, "/api/v1/admin/tenants", "GET")
	if err != nil {
		t.Fatalf("EnforceTenant(seller): %v", err)
	}
	if allowed {
		t.Fatal("seller must not pass admin route enforcement")
	}
}

func TestSyncTenantRoleRevokeOnDemotion(t *testing.T) {
	db := setupAuthzTest(t)

	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if err := Bootstrap(svc); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if err := SyncTenantRole(svc, 7, constants.TenantRoleAdmin); err != nil {
		t.Fatalf("SyncTenantRole(admin): %v", err)
	}
	allowed, err := svc.EnforceTenant(7, "/api/v1/admin/tenants/7", "DELETE")
	if err != nil {
		t.Fatalf("EnforceTenant: %v", err)
	}
	if !allowed {
		t.Fatal("admin grouping must allow admin routes")
	}

	if err := SyncTenantRole(svc, 7, constants.TenantRoleSeller); err != nil {
		t.Fatalf("SyncTenantRole(seller): %v", err)
	}
	allowed, err = svc.EnforceTenant(7, "/api/v1/admin/tenants/7", "DELETE")
	if err != nil {
		t.Fatalf("EnforceTenant: %v", err)
	}
	if allowed {
		t.Fatal("demoted tenant must lose admin routes")
	}
}
