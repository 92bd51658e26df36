package router

import (
	"fmt"
	"strings"

	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/config"
	adminhandlers "github.com/sellstat-next/internal/http/handlers/admin"
	sellerhandlers "github.com/sellstat-next/internal/http/handlers/seller"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 라우팅 초기화
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	sellerHandler := sellerhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ss"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 인증 (비로그인)
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", sellerHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), sellerHandler.Login)
		}

		// 셀러 접근 (JWT 필요)
		seller := apiV1.Group("")
		seller.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.TenantRepo))
		{
			seller.GET("/me", sellerHandler.Me)
			seller.PUT("/me/password", sellerHandler.ChangePassword)

			// 정산 파일 업로드
			seller.POST("/upload", sellerHandler.UploadSettlement)
			seller.GET("/upload-logs", sellerHandler.ListUploadLogs)

			// 통합 레코드
			seller.GET("/records", sellerHandler.ListRecords)
			seller.GET("/records/:id", sellerHandler.GetRecord)
			seller.PUT("/records/:id", sellerHandler.UpdateRecord)
			seller.DELETE("/records/:id", sellerHandler.DeleteRecord)
			seller.POST("/records/batch-delete", sellerHandler.BatchDeleteRecords)
			seller.DELETE("/records", sellerHandler.DeleteAllRecords)

			// 마진 마스터
			seller.GET("/margins", sellerHandler.ListMargins)
			seller.GET("/margins/:id", sellerHandler.GetMargin)
			seller.POST("/margins", sellerHandler.CreateMargin)
			seller.PUT("/margins/:id", sellerHandler.UpdateMargin)
			seller.DELETE("/margins/:id", sellerHandler.DeleteMargin)
			seller.POST("/margins/batch", sellerHandler.BatchUpsertMargins)
			seller.POST("/margins/import", sellerHandler.ImportMargins)
			seller.POST("/margins/recalculate", sellerHandler.RecalculateMargins)

			// 가구매
			seller.GET("/fake-purchases", sellerHandler.ListFakePurchases)
			seller.GET("/fake-purchases/:id", sellerHandler.GetFakePurchase)
			seller.POST("/fake-purchases", sellerHandler.CreateFakePurchase)
			seller.PUT("/fake-purchases/:id", sellerHandler.UpdateFakePurchase)
			seller.DELETE("/fake-purchases/:id", sellerHandler.DeleteFakePurchase)

			// 집계/리포트
			seller.GET("/metrics/daily", sellerHandler.DailyMetrics)
			seller.GET("/metrics/products", sellerHandler.ProductMetrics)
			seller.GET("/metrics/options", sellerHandler.OptionMetrics)
			seller.GET("/export", sellerHandler.ExportRecords)
		}

		// 관리자 접근 (JWT + RBAC)
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.TenantRepo), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/tenants", adminHandler.ListTenants)
			admin.GET("/tenants/:id", adminHandler.GetTenant)
			admin.PUT("/tenants/:id", adminHandler.UpdateTenant)
			admin.DELETE("/tenants/:id", adminHandler.DeleteTenant)
			admin.POST("/tenants/:id/recalculate", adminHandler.RecalculateTenantRecords)
		}
	}

	// 헬스 체크
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
