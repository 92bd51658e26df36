package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/sellstat-next/internal/app"
	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 설정 로드
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret 이 약하거나 기본값입니다. 운영 환경에서는 강한 무작위 키를 설정하세요")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("경고: JWT secret 이 약하거나 기본값입니다. 운영 전 교체를 권장합니다")
	}

	// 데이터베이스 초기화
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 초기화 실패: %v", err)
	}

	// 테이블 자동 마이그레이션
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	// 기본 관리자 계정 초기화
	defaultAdminEmail := os.Getenv("SS_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("SS_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("경고: SS_DEFAULT_ADMIN_PASSWORD 가 없어 기본 관리자 초기화를 건너뜁니다")
	} else if err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("경고: 기본 관리자 초기화 실패: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("서비스 실행 실패: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "███████╗███████╗██╗     ██╗     ███████╗████████╗ █████╗ ████████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝██╔════╝██║     ██║     ██╔════╝╚══██╔══╝██╔══██╗╚══██╔══╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗█████╗  ██║     ██║     ███████╗   ██║   ███████║   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚════██║██╔══╝  ██║     ██║     ╚════██║   ██║   ██╔══██║   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "███████║███████╗███████╗███████╗███████║   ██║   ██║  ██║   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚══════╝╚══════╝╚══════╝╚══════╝╚══════╝   ╚═╝   ╚═╝  ╚═╝   ╚═╝   " + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "SellStat API - 쿠팡 셀러 정산 통합 백엔드" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
