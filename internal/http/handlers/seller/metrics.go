package seller

import (
	"strconv"

	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
)

func metricsQueryFrom(c *gin.Context, tid uint) service.MetricsQuery {
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	return service.MetricsQuery{
		TenantID: tid,
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Product:  c.Query("product"),
		OptionID: c.Query("option_id"),
		Refresh:  refresh,
	}
}

// DailyMetrics 일자별 집계 조회 (가구매 보정 적용)
func (h *Handler) DailyMetrics(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	result, err := h.MetricsService.Daily(c.Request.Context(), metricsQueryFrom(c, tid))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, result)
}

// ProductMetrics 상품별 집계 조회
func (h *Handler) ProductMetrics(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	result, err := h.MetricsService.Products(c.Request.Context(), metricsQueryFrom(c, tid))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, result)
}

// OptionMetrics 옵션별 집계 조회
func (h *Handler) OptionMetrics(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	result, err := h.MetricsService.Options(c.Request.Context(), metricsQueryFrom(c, tid))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, result)
}
