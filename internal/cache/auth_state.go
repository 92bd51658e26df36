package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/sellstat-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// TenantAuthState 테넌트 인증 스냅샷
// token_invalid_before 는 Unix 초 타임스탬프, 0 이면 미설정.
// 요청마다 DB 를 다시 조회하지 않기 위한 Redis 전용 구조다.
type TenantAuthState struct {
	TenantID           uint   `json:"tenant_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func tenantAuthStateKey(tenantID uint) string {
	return fmt.Sprintf("auth:tenant:%d", tenantID)
}

// BuildTenantAuthState 테넌트 모델로 인증 스냅샷 구성
func BuildTenantAuthState(tenant *models.Tenant) *TenantAuthState {
	if tenant == nil {
		return nil
	}
	state := &TenantAuthState{
		TenantID:     tenant.ID,
		Email:        tenant.Email,
		Role:         tenant.Role,
		Status:       tenant.Status,
		TokenVersion: tenant.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if tenant.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = tenant.TokenInvalidBefore.Unix()
	}
	return state
}

// GetTenantAuthState 테넌트 인증 스냅샷 조회
func GetTenantAuthState(ctx context.Context, tenantID uint) (*TenantAuthState, bool, error) {
	if tenantID == 0 {
		return nil, false, nil
	}
	var state TenantAuthState
	hit, err := GetJSON(ctx, tenantAuthStateKey(tenantID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetTenantAuthState 테넌트 인증 스냅샷 기록
func SetTenantAuthState(ctx context.Context, state *TenantAuthState) error {
	if state == nil || state.TenantID == 0 {
		return nil
	}
	return SetJSON(ctx, tenantAuthStateKey(state.TenantID), state, authStateCacheTTL)
}

// DelTenantAuthState 테넌트 인증 스냅샷 삭제
func DelTenantAuthState(ctx context.Context, tenantID uint) error {
	if tenantID == 0 {
		return nil
	}
	return Del(ctx, tenantAuthStateKey(tenantID))
}
