package authz

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"
)

// AdminRole 관리자 역할 이름
const AdminRole = "role:admin"

// BuiltinPolicies 기본 정책 매트릭스
// 관리자 역할은 관리 API 전체에 접근할 수 있다.
func BuiltinPolicies() []Policy {
	return []Policy{
		{Subject: AdminRole, Object: "/admin/*", Action: "*"},
	}
}

// Bootstrap 기본 역할/정책 시드
func Bootstrap(svc *Service) error {
	if svc == nil || svc.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	for _, p := range BuiltinPolicies() {
		if err := svc.GrantRolePolicy(p.Subject, p.Object, p.Action); err != nil {
			return err
		}
	}
	return nil
}

// SyncAdminTenants DB 상의 관리자 테넌트 전원의 역할 그룹핑을 맞춘다
// 시드 계정처럼 API 를 거치지 않고 생긴 관리자도 기동 시점에 반영된다.
func SyncAdminTenants(svc *Service, db *gorm.DB) error {
	if svc == nil || db == nil {
		return fmt.Errorf("authz service unavailable")
	}
	var tenants []models.Tenant
	if err := db.Where("role = ?", constants.TenantRoleAdmin).Find(&tenants).Error; err != nil {
		return fmt.Errorf("load admin tenants failed: %w", err)
	}
	for i := range tenants {
		if err := SyncTenantRole(svc, tenants[i].ID, tenants[i].Role); err != nil {
			return err
		}
	}
	return nil
}

// SyncTenantRole 테넌트의 역할 그룹핑을 모델 role 값과 맞춘다
// 로그인 시점과 관리자 지정/해제 시점에 호출한다.
func SyncTenantRole(svc *Service, tenantID uint, role string) error {
	if svc == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if err := svc.RevokeRoles(tenantID); err != nil {
		return err
	}
	if role == "" {
		return nil
	}
	return svc.GrantRole(tenantID, role)
}
