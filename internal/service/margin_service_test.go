package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMarginServiceTest(t *testing.T) (*MarginService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:margin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ProductMargin{}, &models.IntegratedRecord{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	marginRepo := repository.NewProductMarginRepository(db)
	recordRepo := repository.NewIntegratedRecordRepository(db)
	return NewMarginService(marginRepo, recordRepo, settlement.DefaultCostPolicy()), db
}

func TestMarginCreateDuplicateKey(t *testing.T) {
	svc, _ := setupMarginServiceTest(t)

	input := MarginInput{OptionID: "OPT-1", ProductName: "기모 맨투맨", CostPrice: 8000}
	if _, err := svc.Create(1, input); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(1, input); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
	// 다른 테넌트는 같은 옵션ID 를 쓸 수 있다
	if _, err := svc.Create(2, input); err != nil {
		t.Fatalf("other tenant create: %v", err)
	}
}

func TestMarginBatchUpsert(t *testing.T) {
	svc, _ := setupMarginServiceTest(t)

	if _, err := svc.Create(1, MarginInput{OptionID: "OPT-1", CostPrice: 1000}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	created, updated, err := svc.BatchUpsert(1, []MarginInput{
		{OptionID: "OPT-1", CostPrice: 2000},
		{OptionID: "OPT-2", CostPrice: 3000},
		{OptionID: ""},
	})
	if err != nil {
		t.Fatalf("BatchUpsert: %v", err)
	}
	if created != 1 || updated != 1 {
		t.Fatalf("created=%d updated=%d, want 1/1", created, updated)
	}

	margin, err := svc.marginRepo.GetByOption(1, "OPT-1")
	if err != nil || margin == nil {
		t.Fatalf("GetByOption: %v %v", margin, err)
	}
	if margin.CostPrice != 2000 {
		t.Fatalf("cost_price = %v, want 2000", margin.CostPrice)
	}
}

func TestMarginImportFile(t *testing.T) {
	svc, _ := setupMarginServiceTest(t)

	csv := "옵션ID,상품명,원가,판매가,수수료,부가세\n" +
		"OPT-1,기모 맨투맨,\"8,000\",\"20,000\",\"2,160\",840\n"
	created, updated, err := svc.ImportFile(1, "margins.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if created != 1 || updated != 0 {
		t.Fatalf("created=%d updated=%d, want 1/0", created, updated)
	}
}

func TestMarginRecalculate(t *testing.T) {
	svc, db := setupMarginServiceTest(t)

	rec := models.IntegratedRecord{
		TenantID:      1,
		OptionID:      "OPT-1",
		Date:          "2026-01-10",
		SalesAmount:   100000,
		SalesQuantity: 10,
		AdCost:        5000,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	if _, err := svc.Create(1, MarginInput{OptionID: "OPT-1", CostPrice: 1000, FeeAmount: 500, VAT: 300}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Recalculate(1)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}

	var got models.IntegratedRecord
	if err := db.First(&got, rec.ID).Error; err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if got.CostPrice != 1000 || got.TotalCost != 18000 {
		t.Fatalf("margin not reapplied: %+v", got)
	}
	if got.NetProfit != 100000-18000-5000*1.1 {
		t.Fatalf("net_profit = %v", got.NetProfit)
	}
}
