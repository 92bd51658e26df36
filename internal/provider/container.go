package provider

import (
	"github.com/sellstat-next/internal/authz"
	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/service"
	"github.com/sellstat-next/internal/settlement"
)

// Container 의존성 주입 컨테이너
type Container struct {
	Config *config.Config
	Policy settlement.CostPolicy

	// Repositories
	TenantRepo    repository.TenantRepository
	RecordRepo    repository.IntegratedRecordRepository
	MarginRepo    repository.ProductMarginRepository
	FakeRepo      repository.FakePurchaseRepository
	UploadLogRepo repository.UploadLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	RecordService       *service.RecordService
	MarginService       *service.MarginService
	FakePurchaseService *service.FakePurchaseService
	ReconcileService    *service.ReconcileService
	MetricsService      *service.MetricsService
	ExportService       *service.ExportService
}

// NewContainer 컨테이너 초기화
func NewContainer(cfg *config.Config) *Container {
	// 캐시 초기화
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config: cfg,
		Policy: settlement.PolicyFromConfig(cfg.Settlement),
	}

	// 1. Repositories 초기화
	c.initRepositories()

	// 2. Services 초기화
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.TenantRepo = repository.NewTenantRepository(db)
	c.RecordRepo = repository.NewIntegratedRecordRepository(db)
	c.MarginRepo = repository.NewProductMarginRepository(db)
	c.FakeRepo = repository.NewFakePurchaseRepository(db)
	c.UploadLogRepo = repository.NewUploadLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := authz.Bootstrap(c.AuthzService); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}
	// 시드된 관리자 계정도 역할 그룹핑을 받아야 관리 API 를 쓸 수 있다
	if err := authz.SyncAdminTenants(c.AuthzService, models.DB); err != nil {
		logger.Errorw("provider_sync_admin_tenants_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.TenantRepo)
	c.RecordService = service.NewRecordService(c.RecordRepo, c.Policy)
	c.MarginService = service.NewMarginService(c.MarginRepo, c.RecordRepo, c.Policy)
	c.FakePurchaseService = service.NewFakePurchaseService(c.FakeRepo, c.Policy)
	c.ReconcileService = service.NewReconcileService(c.RecordRepo, c.MarginRepo, c.UploadLogRepo, c.Policy)
	c.MetricsService = service.NewMetricsService(c.RecordRepo, c.FakeRepo, c.Policy)
	c.ExportService = service.NewExportService(c.RecordRepo, c.FakeRepo, c.Policy)
}
