package seller

import (
	"strconv"

	"github.com/sellstat-next/internal/http/handlers/shared"
	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "잘못된 ID 입니다", err)
		return 0, false
	}
	return uint(id), true
}

// ListRecords 통합 레코드 목록 조회
func (h *Handler) ListRecords(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	records, total, err := h.RecordService.List(repository.RecordListFilter{
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

	response.SuccessWithPage(c, records, shared.BuildPagination(page, pageSize, total))
}

// GetRecord 통합 레코드 단건 조회
func (h *Handler) GetRecord(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rec, err := h.RecordService.Get(tid, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, rec)
}

// UpdateRecord 통합 레코드 수동 수정. 파생 지표는 서버가 재계산한다.
func (h *Handler) UpdateRecord(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.UpdateRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}

	rec, err := h.RecordService.Update(tid, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, rec)
}

// DeleteRecord 통합 레코드 단건 삭제
func (h *Handler) DeleteRecord(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.RecordService.DeleteByID(tid, id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": 1})
}

// BatchDeleteRecordsRequest 레코드 일괄 삭제 요청
type BatchDeleteRecordsRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// BatchDeleteRecords 통합 레코드 일괄 삭제
func (h *Handler) BatchDeleteRecords(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var req BatchDeleteRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "잘못된 요청입니다", err)
		return
	}
	if len(req.IDs) == 0 {
		respondError(c, response.CodeBadRequest, "삭제할 ID 목록이 비어 있습니다", nil)
		return
	}

	deleted, err := h.RecordService.DeleteByIDs(tid, req.IDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// DeleteAllRecords 테넌트의 통합 레코드 전체 삭제
func (h *Handler) DeleteAllRecords(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	deleted, err := h.RecordService.DeleteAll(tid)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("records_delete_all", "tenant_id", tid, "deleted", deleted)
	response.Success(c, gin.H{"deleted": deleted})
}
