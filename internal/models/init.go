package models

import (
	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 기본 관리자 테넌트 초기화
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&Tenant{}).Where("role = ?", constants.TenantRoleAdmin).Count(&count)

	// 관리자 계정이 이미 있으면 아무것도 하지 않는다
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@sellstat.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Tenant{
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.TenantRoleAdmin,
		Status:       constants.TenantStatusActive,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email, "password", password)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}

	return nil
}
