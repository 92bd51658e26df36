package seller

import (
	"fmt"
	"net/http"

	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportRecords 정산 리포트 xlsx 다운로드
// group=option|product, period=day|total 조합으로 집계 단위를 정한다.
func (h *Handler) ExportRecords(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	data, filename, err := h.ExportService.ExportRecords(service.ExportQuery{
		TenantID: tid,
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Product:  c.Query("product"),
		OptionID: c.Query("option_id"),
		GroupBy:  c.Query("group"),
		Period:   c.Query("period"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
