package shared

import (
	"errors"

	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/parser"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog request_id 가 붙은 로거 제공.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 오류 응답을 내리고 원인 오류가 있으면 로그를 남긴다.
func RespondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// RespondServiceError 서비스 오류를 비즈니스 코드에 맞춰 응답으로 변환.
func RespondServiceError(c *gin.Context, err error) {
	var missing *parser.MissingColumnsError
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidPassword):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrTenantDisabled):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrDuplicateKey),
		errors.Is(err, service.ErrEmailTaken):
		response.Error(c, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrWeakPassword),
		errors.As(err, &missing),
		errors.Is(err, parser.ErrUnsupportedFormat):
		response.BadRequest(c, err.Error())
	default:
		RespondError(c, response.CodeInternal, "내부 오류가 발생했습니다", err)
	}
}
