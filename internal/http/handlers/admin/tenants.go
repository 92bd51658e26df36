package admin

import (
	"strconv"

	"github.com/sellstat-next/internal/authz"
	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/http/handlers/shared"
	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseTenantIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "잘못된 테넌트 ID 입니다", err)
		return 0, false
	}
	return uint(id), true
}

// ListTenants 테넌트 목록 조회
func (h *Handler) ListTenants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	tenants, total, err := h.TenantRepo.List(repository.TenantListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "테넌트 목록 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, tenants, shared.BuildPagination(page, pageSize, total))
}

// GetTenant 테넌트 단건 조회
func (h *Handler) GetTenant(c *gin.Context) {
	id, ok := parseTenantIDParam(c)
	if !ok {
		return
	}

	tenant, err := h.TenantRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "테넌트 조회에 실패했습니다", err)
		return
	}
	if tenant == nil {
		response.NotFound(c, "테넌트를 찾을 수 없습니다")
		return
	}

	response.Success(c, tenant)
}

// UpdateTenantRequest 테넌트 수정 요청
type UpdateTenantRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"`   // seller / admin
	Status string `json:"status"` // active / disabled
}

// UpdateTenant 테넌트 역할/상태 수정
// 역할 변경 시 casbin 그룹을 동기화하고, 인증 상태 캐시를 비워 즉시 반영한다.
func (h *Handler) UpdateTenant(c *gin.Context) {
	id, ok := parseTenantIDParam(c)
	if !ok {
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	tenant, err := h.TenantRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "테넌트 조회에 실패했습니다", err)
		return
	}
	if tenant == nil {
		response.NotFound(c, "테넌트를 찾을 수 없습니다")
		return
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Role != "" {
		if req.Role != constants.TenantRoleSeller && req.Role != constants.TenantRoleAdmin {
			respondError(c, response.CodeBadRequest, "지원하지 않는 역할입니다", nil)
			return
		}
		fields["role"] = req.Role
	}
	if req.Status != "" {
		if req.Status != constants.TenantStatusActive && req.Status != constants.TenantStatusDisabled {
			respondError(c, response.CodeBadRequest, "지원하지 않는 상태입니다", nil)
			return
		}
		fields["status"] = req.Status
	}
	if len(fields) == 0 {
		respondError(c, response.CodeBadRequest, "수정할 항목이 없습니다", nil)
		return
	}

	if err := h.TenantRepo.UpdateFields(id, fields); err != nil {
		respondError(c, response.CodeInternal, "테넌트 수정에 실패했습니다", err)
		return
	}

	if role, changed := fields["role"].(string); changed && role != tenant.Role {
		if err := authz.SyncTenantRole(h.AuthzService, id, role); err != nil {
			requestLog(c).Errorw("tenant_sync_role_failed", "tenant_id", id, "role", role, "error", err)
		}
	}
	if err := cache.DelTenantAuthState(c.Request.Context(), id); err != nil {
		requestLog(c).Warnw("tenant_auth_state_invalidate_failed", "tenant_id", id, "error", err)
	}

	updated, err := h.TenantRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "테넌트 조회에 실패했습니다", err)
		return
	}

	response.Success(c, updated)
}

// DeleteTenant 테넌트 삭제 (soft delete)
func (h *Handler) DeleteTenant(c *gin.Context) {
	id, ok := parseTenantIDParam(c)
	if !ok {
		return
	}

	tenant, err := h.TenantRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "테넌트 조회에 실패했습니다", err)
		return
	}
	if tenant == nil {
		response.NotFound(c, "테넌트를 찾을 수 없습니다")
		return
	}

	if err := h.TenantRepo.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "테넌트 삭제에 실패했습니다", err)
		return
	}
	if err := cache.DelTenantAuthState(c.Request.Context(), id); err != nil {
		requestLog(c).Warnw("tenant_auth_state_invalidate_failed", "tenant_id", id, "error", err)
	}

	requestLog(c).Infow("tenant_deleted", "tenant_id", id, "email", tenant.Email)
	response.Success(c, gin.H{"deleted": true})
}
