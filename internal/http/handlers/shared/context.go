package shared

import (
	"github.com/sellstat-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 인증 미들웨어가 넣는 컨텍스트 키
const (
	ContextTenantID   = "tenant_id"
	ContextTenantRole = "tenant_role"
)

// TenantID 컨텍스트에서 테넌트 ID 를 꺼낸다. 없으면 401 응답.
func TenantID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextTenantID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "로그인이 필요합니다", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		RespondError(c, response.CodeInternal, "인증 컨텍스트가 올바르지 않습니다", nil)
		return 0, false
	}
	return id, true
}

// TenantRole 컨텍스트의 역할 값. 없으면 빈 문자열.
func TenantRole(c *gin.Context) string {
	if value, ok := c.Get(ContextTenantRole); ok {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}
