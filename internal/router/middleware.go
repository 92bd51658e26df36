package router

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sellstat-next/internal/authz"
	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/http/response"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const tenantIDContextKey = "tenant_id"
const tenantRoleContextKey = "tenant_role"

// CORSMiddleware 교차 출처 요청 미들웨어
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 요청 ID 미들웨어
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 구조화 요청 로그 미들웨어
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// JWTAuthMiddleware 테넌트 JWT 인증 미들웨어
// 캐시된 인증 스냅샷으로 토큰 버전/상태를 먼저 검증하고, 캐시 미스 시 DB 를 조회한다.
func JWTAuthMiddleware(secretKey string, tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			response.Unauthorized(c, "JWT 비밀키가 설정되지 않았습니다")
			c.Abort()
			return
		}
		if tenantRepo == nil {
			response.Unauthorized(c, "유효하지 않은 토큰입니다")
			c.Abort()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "인증 헤더가 없습니다")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Unauthorized(c, "인증 헤더 형식이 올바르지 않습니다")
			c.Abort()
			return
		}

		tokenString := parts[1]
		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		claims := &service.JWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid || claims.TenantID == 0 {
			response.Unauthorized(c, "유효하지 않은 토큰입니다")
			c.Abort()
			return
		}

		if cached, hit, cacheErr := cache.GetTenantAuthState(c.Request.Context(), claims.TenantID); cacheErr == nil && hit && cached != nil {
			if !isActiveTenantStatus(cached.Status) {
				response.Forbidden(c, "비활성화된 계정입니다")
				c.Abort()
				return
			}
			if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
				response.Unauthorized(c, "만료되었거나 회수된 토큰입니다")
				c.Abort()
				return
			}
			c.Set(tenantIDContextKey, claims.TenantID)
			c.Set(tenantRoleContextKey, cached.Role)
			c.Next()
			return
		}

		tenant, err := tenantRepo.GetByID(claims.TenantID)
		if err != nil || tenant == nil {
			response.Unauthorized(c, "유효하지 않은 토큰입니다")
			c.Abort()
			return
		}
		if !isActiveTenantStatus(tenant.Status) {
			response.Forbidden(c, "비활성화된 계정입니다")
			c.Abort()
			return
		}
		if claims.TokenVersion != tenant.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, tenant.TokenInvalidBefore) {
			response.Unauthorized(c, "만료되었거나 회수된 토큰입니다")
			c.Abort()
			return
		}
		_ = cache.SetTenantAuthState(c.Request.Context(), cache.BuildTenantAuthState(tenant))

		c.Set(tenantIDContextKey, tenant.ID)
		c.Set(tenantRoleContextKey, tenant.Role)
		c.Next()
	}
}

// AdminRBACMiddleware 관리자 RBAC 인가 미들웨어
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			response.Unauthorized(c, "인가 모듈을 사용할 수 없습니다")
			c.Abort()
			return
		}

		tenantIDRaw, exists := c.Get(tenantIDContextKey)
		if !exists {
			response.Unauthorized(c, "인증이 필요합니다")
			c.Abort()
			return
		}
		tenantID, ok := tenantIDRaw.(uint)
		if !ok || tenantID == 0 {
			response.Unauthorized(c, "인증이 필요합니다")
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceTenant(tenantID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"tenant_id", tenantID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Unauthorized(c, "인가 검사에 실패했습니다")
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"tenant_id", tenantID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, "접근 권한이 없습니다")
			c.Abort()
			return
		}

		c.Next()
	}
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}

func isActiveTenantStatus(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == constants.TenantStatusActive
}
