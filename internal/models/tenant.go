package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant 셀러(쇼핑몰) 계정 테이블
// 모든 데이터는 tenant_id 로 행 단위 격리된다.
type Tenant struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                    // 기본키
	Name               string         `gorm:"not null" json:"name"`                    // 셀러/몰 이름
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`       // 로그인 이메일
	PasswordHash       string         `gorm:"type:varchar(200);not null" json:"-"`     // 비밀번호 해시
	Role               string         `gorm:"index;not null" json:"role"`              // seller / admin
	Status             string         `gorm:"index;not null" json:"status"`            // active / disabled
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`             // 토큰 무효화 버전
	TokenInvalidBefore *time.Time     `json:"-"`                                       // 해당 시각 이전 발급 토큰 무효
	LastLoginAt        *time.Time     `json:"last_login_at"`                           // 마지막 로그인 시각
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                 // 생성 시각
	UpdatedAt          time.Time      `json:"updated_at"`                              // 수정 시각
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                          // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (Tenant) TableName() string {
	return "tenants"
}
