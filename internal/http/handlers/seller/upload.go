package seller

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sellstat-next/internal/http/handlers/shared"
	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) validateUploadFile(file *multipart.FileHeader) string {
	if file.Size > h.Config.Upload.MaxSize {
		return "파일 크기가 허용 한도를 초과했습니다"
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range h.Config.Upload.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return ""
		}
	}
	return "지원하지 않는 파일 형식입니다"
}

// UploadSettlement 정산 파일 업로드
// sales_file 은 필수, ads_file 은 선택. target_date 기준으로 통합 레코드를 upsert 한다.
func (h *Handler) UploadSettlement(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	targetDate := c.PostForm("target_date")
	if targetDate == "" {
		respondError(c, response.CodeBadRequest, "대상 일자(target_date)는 필수입니다", nil)
		return
	}

	salesFile, err := c.FormFile("sales_file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "판매 파일(sales_file)은 필수입니다", nil)
		return
	}
	if msg := h.validateUploadFile(salesFile); msg != "" {
		respondError(c, response.CodeBadRequest, msg, nil)
		return
	}

	input := service.ReconcileInput{
		TenantID:      id,
		TargetDate:    targetDate,
		SalesFilename: salesFile.Filename,
	}

	salesReader, err := salesFile.Open()
	if err != nil {
		respondError(c, response.CodeInternal, "판매 파일을 열 수 없습니다", err)
		return
	}
	defer salesReader.Close()
	input.SalesFile = salesReader

	if adsFile, err := c.FormFile("ads_file"); err == nil {
		if msg := h.validateUploadFile(adsFile); msg != "" {
			respondError(c, response.CodeBadRequest, msg, nil)
			return
		}
		adsReader, err := adsFile.Open()
		if err != nil {
			respondError(c, response.CodeInternal, "광고 파일을 열 수 없습니다", err)
			return
		}
		defer adsReader.Close()
		input.AdsFilename = adsFile.Filename
		input.AdsFile = adsReader
	}

	summary, err := h.ReconcileService.Reconcile(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, summary)
}

// ListUploadLogs 업로드 이력 조회
func (h *Handler) ListUploadLogs(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	logs, total, err := h.ReconcileService.ListUploadLogs(repository.UploadLogListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: id,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "업로드 이력 조회에 실패했습니다", err)
		return
	}

	response.SuccessWithPage(c, logs, shared.BuildPagination(page, pageSize, total))
}
