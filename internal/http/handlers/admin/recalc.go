package admin

import (
	"github.com/sellstat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RecalculateTenantRecords 특정 테넌트 레코드를 마진 마스터 기준으로 전체 재계산
func (h *Handler) RecalculateTenantRecords(c *gin.Context) {
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

	updated, err := h.MarginService.Recalculate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("admin_recalculate_done", "tenant_id", id, "updated", updated)
	response.Success(c, gin.H{"updated": updated})
}
