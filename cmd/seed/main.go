package main

import (
	"fmt"
	"time"

	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/settlement"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 연결 실패: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	policy := settlement.PolicyFromConfig(cfg.Settlement)

	// 데모 셀러 계정
	hash, err := bcrypt.GenerateFromPassword([]byte("seller1234"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("비밀번호 해시 생성 실패: %v", err)
	}
	tenant := models.Tenant{
		Name:         "데모몰",
		Email:        "demo@sellstat.local",
		PasswordHash: string(hash),
		Role:         constants.TenantRoleSeller,
		Status:       constants.TenantStatusActive,
	}
	if err := models.DB.Where("email = ?", tenant.Email).FirstOrCreate(&tenant).Error; err != nil {
		stdLog.Fatalf("데모 셀러 생성 실패: %v", err)
	}

	// 마진 마스터
	margins := []models.ProductMargin{
		{TenantID: tenant.ID, OptionID: "OPT-1001", ProductName: "프리미엄 물티슈", OptionName: "100매 10팩", CostPrice: 4200, FeeAmount: 980, VAT: 420, SellingPrice: 12900},
		{TenantID: tenant.ID, OptionID: "OPT-1002", ProductName: "프리미엄 물티슈", OptionName: "100매 20팩", CostPrice: 8100, FeeAmount: 1850, VAT: 810, SellingPrice: 23900},
		{TenantID: tenant.ID, OptionID: "OPT-2001", ProductName: "스테인리스 텀블러", OptionName: "500ml 실버", CostPrice: 5600, FeeAmount: 1400, VAT: 560, SellingPrice: 18900},
	}
	for i := range margins {
		m := margins[i]
		if err := models.DB.Where("tenant_id = ? AND option_id = ?", m.TenantID, m.OptionID).
			FirstOrCreate(&m).Error; err != nil {
			stdLog.Fatalf("마진 생성 실패: %v", err)
		}
	}

	// 최근 7일치 통합 레코드
	today := time.Now()
	seeded := 0
	for day := 0; day < 7; day++ {
		date := today.AddDate(0, 0, -day).Format(constants.DateLayout)
		for i, m := range margins {
			qty := 3 + (day+i)%5
			rec := models.IntegratedRecord{
				TenantID:      tenant.ID,
				OptionID:      m.OptionID,
				Date:          date,
				ProductName:   m.ProductName,
				OptionName:    m.OptionName,
				SalesAmount:   m.SellingPrice * float64(qty),
				SalesQuantity: qty,
				OrderCount:    qty,
				AdCost:        float64(2500 + 700*i),
				Impressions:   4000 + 900*i,
				Clicks:        60 + 15*i,
				ConversionSales: m.SellingPrice * float64(qty) * 0.4,
				CostPrice:       m.CostPrice,
				SellingPrice:    m.SellingPrice,
				FeeAmount:       m.FeeAmount,
				VAT:             m.VAT,
			}
			policy.ApplyMetrics(&rec)
			result := models.DB.Where("tenant_id = ? AND option_id = ? AND date = ?",
				rec.TenantID, rec.OptionID, rec.Date).FirstOrCreate(&rec)
			if result.Error != nil {
				stdLog.Fatalf("레코드 생성 실패: %v", result.Error)
			}
			seeded += int(result.RowsAffected)
		}
	}

	// 가구매 샘플
	fake := models.FakePurchase{
		TenantID:    tenant.ID,
		OptionID:    "OPT-1001",
		Date:        today.AddDate(0, 0, -1).Format(constants.DateLayout),
		ProductName: "프리미엄 물티슈",
		OptionName:  "100매 10팩",
		Quantity:    2,
		UnitPrice:   12900,
	}
	policy.ApplyFakePurchaseCost(&fake)
	if err := models.DB.Where("tenant_id = ? AND option_id = ? AND date = ?",
		fake.TenantID, fake.OptionID, fake.Date).FirstOrCreate(&fake).Error; err != nil {
		stdLog.Fatalf("가구매 생성 실패: %v", err)
	}

	fmt.Printf("시드 완료: tenant=%s records=%d margins=%d\n", tenant.Email, seeded, len(margins))
}
