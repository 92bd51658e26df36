package seller

import (
	"github.com/sellstat-next/internal/authz"
	"github.com/sellstat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 회원가입 요청
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 셀러 회원가입
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	tenant, err := h.AuthService.Register(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := authz.SyncTenantRole(h.AuthzService, tenant.ID, tenant.Role); err != nil {
		requestLog(c).Warnw("register_sync_role_failed", "tenant_id", tenant.ID, "error", err)
	}

	response.Success(c, tenant)
}

// LoginRequest 로그인 요청
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 셀러 로그인
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	tenant, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := authz.SyncTenantRole(h.AuthzService, tenant.ID, tenant.Role); err != nil {
		requestLog(c).Warnw("login_sync_role_failed", "tenant_id", tenant.ID, "error", err)
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"tenant":     tenant,
	})
}

// ChangePasswordRequest 비밀번호 변경 요청
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 비밀번호 변경. 성공 시 기존 토큰은 모두 무효화된다.
func (h *Handler) ChangePassword(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"changed": true})
}

// Me 내 계정 조회
func (h *Handler) Me(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	tenant, err := h.TenantRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "계정 조회에 실패했습니다", err)
		return
	}
	if tenant == nil {
		response.NotFound(c, "계정을 찾을 수 없습니다")
		return
	}

	response.Success(c, tenant)
}
