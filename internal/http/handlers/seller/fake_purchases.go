package seller

import (
	"strconv"

	"github.com/sellstat-next/internal/http/handlers/shared"
	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListFakePurchases 가구매 목록 조회
func (h *Handler) ListFakePurchases(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	fakes, total, err := h.FakePurchaseService.List(repository.FakePurchaseListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: id,
		OptionID: c.Query("option_id"),
		Product:  c.Query("product"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, fakes, shared.BuildPagination(page, pageSize, total))
}

// GetFakePurchase 가구매 단건 조회
func (h *Handler) GetFakePurchase(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fp, err := h.FakePurchaseService.Get(tid, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, fp)
}

// CreateFakePurchase 가구매 등록. 원가는 서버가 단가 기준으로 계산한다.
func (h *Handler) CreateFakePurchase(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.FakePurchaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	fp, err := h.FakePurchaseService.Create(tid, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, fp)
}

// UpdateFakePurchase 가구매 수정
func (h *Handler) UpdateFakePurchase(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.FakePurchaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	fp, err := h.FakePurchaseService.Update(tid, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, fp)
}

// DeleteFakePurchase 가구매 삭제
func (h *Handler) DeleteFakePurchase(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.FakePurchaseService.Delete(tid, id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": 1})
}
