package seller

import (
	"strconv"

	"github.com/sellstat-next/internal/http/handlers/shared"
	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMargins 마진 마스터 목록 조회
func (h *Handler) ListMargins(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	margins, total, err := h.MarginService.List(repository.MarginListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: id,
		OptionID: c.Query("option_id"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, margins, shared.BuildPagination(page, pageSize, total))
}

// GetMargin 마진 단건 조회
func (h *Handler) GetMargin(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	margin, err := h.MarginService.Get(tid, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, margin)
}

// CreateMargin 마진 등록
func (h *Handler) CreateMargin(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.MarginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	margin, err := h.MarginService.Create(tid, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, margin)
}

// UpdateMargin 마진 수정
func (h *Handler) UpdateMargin(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.MarginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	margin, err := h.MarginService.Update(tid, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, margin)
}

// DeleteMargin 마진 삭제
func (h *Handler) DeleteMargin(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.MarginService.Delete(tid, id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": 1})
}

// BatchUpsertMarginsRequest 마진 일괄 등록/수정 요청
type BatchUpsertMarginsRequest struct {
	Items []service.MarginInput `json:"items" binding:"required"`
}

// BatchUpsertMargins 마진 일괄 등록/수정
func (h *Handler) BatchUpsertMargins(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var req BatchUpsertMarginsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	created, updated, err := h.MarginService.BatchUpsert(tid, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"created": created, "updated": updated})
}

// ImportMargins 마진 파일(xlsx/csv) 업로드
func (h *Handler) ImportMargins(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "마진 파일(file)은 필수입니다", nil)
		return
	}
	if msg := h.validateUploadFile(file); msg != "" {
		respondError(c, response.CodeBadRequest, msg, nil)
		return
	}

	reader, err := file.Open()
	if err != nil {
		respondError(c, response.CodeInternal, "마진 파일을 열 수 없습니다", err)
		return
	}
	defer reader.Close()

	created, updated, err := h.MarginService.ImportFile(tid, file.Filename, reader)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"created": created, "updated": updated})
}

// RecalculateMargins 마진 마스터 기준으로 기존 레코드 전체 재계산
func (h *Handler) RecalculateMargins(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	updated, err := h.MarginService.Recalculate(tid)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"updated": updated})
}
