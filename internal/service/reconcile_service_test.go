package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/parser"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReconcileServiceTest(t *testing.T) (*ReconcileService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:reconcile_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.IntegratedRecord{},
		&models.ProductMargin{},
		&models.UploadLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	recordRepo := repository.NewIntegratedRecordRepository(db)
	marginRepo := repository.NewProductMarginRepository(db)
	uploadLogRepo := repository.NewUploadLogRepository(db)
	return NewReconcileService(recordRepo, marginRepo, uploadLogRepo, settlement.DefaultCostPolicy()), db
}

const salesCSVHeader = "옵션ID,옵션명,상품명,순판매금액,순판매상품수,주문수,총거래금액,총거래상품수\n"

func TestReconcileHappyPath(t *testing.T) {
	svc, db := setupReconcileServiceTest(t)

	margin := models.ProductMargin{
		TenantID:  1,
		OptionID:  "OPT-1",
		CostPrice: 1000,
		FeeAmount: 500,
		VAT:       300,
	}
	if err := db.Create(&margin).Error; err != nil {
		t.Fatalf("create margin failed: %v", err)
	}

	sales := salesCSVHeader +
		"OPT-1,블랙/L,기모 맨투맨,\"100,000\",10,9,\"110,000\",11\n" +
		"OPT-1,블랙/L,기모 맨투맨,\"999,999\",99,9,0,0\n" + // 중복, 첫 행만 사용
		"OPT-2,화이트/M,기모 맨투맨,\"50,000\",5,5,\"50,000\",5\n" +
		"OPT-3,그레이/S,반팔 티셔츠,0,0,0,0,0\n" // 전부 0, 제외
	ads := "광고집행 옵션ID,광고비,노출수,클릭수,총 판매수량(14일),총 전환매출액(14일)\n" +
		"OPT-1,\"3,000\",1000,50,3,\"30,000\"\n" +
		"OPT-1,\"2,000\",500,20,1,\"10,000\"\n"

	summary, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026-01-10",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(sales),
		AdsFilename:   "ads.csv",
		AdsFile:       strings.NewReader(ads),
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if summary.Upserted != 2 || summary.Created != 2 {
		t.Fatalf("upserted=%d created=%d, want 2/2", summary.Upserted, summary.Created)
	}
	if summary.AdsMatched != 1 || summary.MarginMatched != 1 {
		t.Fatalf("ads_matched=%d margin_matched=%d, want 1/1", summary.AdsMatched, summary.MarginMatched)
	}

	dup := false
	for _, w := range summary.Warnings {
		if w.Type == constants.WarnDuplicateRecordKey {
			dup = true
		}
	}
	if !dup {
		t.Fatalf("want duplicate warning, got %+v", summary.Warnings)
	}

	var rec models.IntegratedRecord
	if err := db.Where("tenant_id = ? AND option_id = ? AND date = ?", 1, "OPT-1", "2026-01-10").First(&rec).Error; err != nil {
		t.Fatalf("record not found: %v", err)
	}
	if rec.SalesAmount != 100000 {
		t.Fatalf("duplicate row must keep first occurrence, sales=%v", rec.SalesAmount)
	}
	// 캠페인 두 건이 합산된다
	if rec.AdCost != 5000 || rec.Impressions != 1500 || rec.ConversionSales != 40000 {
		t.Fatalf("ads not grouped: %+v", rec)
	}
	if rec.CostPrice != 1000 || rec.FeeAmount != 500 || rec.VAT != 300 {
		t.Fatalf("margin not joined: %+v", rec)
	}
	if rec.TotalCost != 18000 {
		t.Fatalf("total_cost = %v, want 18000", rec.TotalCost)
	}
	if rec.NetProfit != 100000-18000-5000*1.1 {
		t.Fatalf("net_profit = %v", rec.NetProfit)
	}

	// 마진 미등록 옵션은 0 으로 남는다
	var rec2 models.IntegratedRecord
	if err := db.Where("tenant_id = ? AND option_id = ?", 1, "OPT-2").First(&rec2).Error; err != nil {
		t.Fatalf("record not found: %v", err)
	}
	if rec2.CostPrice != 0 || rec2.AdCost != 0 || rec2.TotalCost != 0 {
		t.Fatalf("unmatched fields must default 0: %+v", rec2)
	}

	// 전부 0 인 행은 저장하지 않는다
	var count int64
	db.Model(&models.IntegratedRecord{}).Where("option_id = ?", "OPT-3").Count(&count)
	if count != 0 {
		t.Fatal("all-zero row must be dropped")
	}

	var log models.UploadLog
	if err := db.Where("tenant_id = ?", 1).First(&log).Error; err != nil {
		t.Fatalf("upload log not written: %v", err)
	}
	if log.Upserted != 2 || log.TargetDate != "2026-01-10" {
		t.Fatalf("unexpected upload log: %+v", log)
	}
}

func TestReconcileRetainsRefundRows(t *testing.T) {
	svc, db := setupReconcileServiceTest(t)

	// 환불만 있는 날은 매출이 음수, 수량/광고비 0 으로 들어온다
	sales := salesCSVHeader +
		"OPT-1,블랙/L,기모 맨투맨,\"10,000\",1,1,\"10,000\",1\n" +
		"OPT-2,화이트/M,반팔 티셔츠,\"-5,000\",0,0,\"-5,000\",0\n" +
		"OPT-3,그레이/S,양말 세트,0,0,0,0,0\n"

	summary, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026-01-12",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(sales),
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if summary.Upserted != 2 {
		t.Fatalf("upserted = %d, want 2", summary.Upserted)
	}

	var refund models.IntegratedRecord
	if err := db.Where("tenant_id = ? AND option_id = ? AND date = ?", 1, "OPT-2", "2026-01-12").First(&refund).Error; err != nil {
		t.Fatalf("refund row must be upserted: %v", err)
	}
	if refund.SalesAmount != -5000 || refund.SalesQuantity != 0 || refund.AdCost != 0 {
		t.Fatalf("refund row fields: %+v", refund)
	}

	var count int64
	db.Model(&models.IntegratedRecord{}).Where("option_id = ?", "OPT-3").Count(&count)
	if count != 0 {
		t.Fatal("all-zero row must be dropped")
	}
}

func TestReconcileMissingSalesColumnsFails(t *testing.T) {
	svc, db := setupReconcileServiceTest(t)

	sales := "옵션ID,순판매금액\nOPT-1,\"100,000\"\n"
	_, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026-01-10",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(sales),
	})

	var missing *parser.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("want MissingColumnsError, got %v", err)
	}

	var count int64
	db.Model(&models.IntegratedRecord{}).Count(&count)
	if count != 0 {
		t.Fatal("failed upload must not persist records")
	}
}

func TestReconcileAdsColumnsMissingIsWarning(t *testing.T) {
	svc, _ := setupReconcileServiceTest(t)

	sales := salesCSVHeader + "OPT-1,블랙/L,기모 맨투맨,\"10,000\",1,1,\"10,000\",1\n"
	ads := "캠페인명,노출수\n캠페인A,1000\n"

	summary, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026-01-10",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(sales),
		AdsFilename:   "ads.csv",
		AdsFile:       strings.NewReader(ads),
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if summary.Upserted != 1 {
		t.Fatalf("upserted = %d, want 1", summary.Upserted)
	}
	found := false
	for _, w := range summary.Warnings {
		if w.Type == constants.WarnAdsColumnsMissing {
			found = true
		}
	}
	if !found {
		t.Fatalf("want ads_columns_missing warning, got %+v", summary.Warnings)
	}
}

func TestReconcileUpsertOverwrites(t *testing.T) {
	svc, db := setupReconcileServiceTest(t)

	first := salesCSVHeader + "OPT-1,블랙/L,기모 맨투맨,\"10,000\",1,1,\"10,000\",1\n"
	if _, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026-01-10",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(first),
	}); err != nil {
		t.Fatalf("first upload: %v", err)
	}

	second := salesCSVHeader + "OPT-1,블랙/L,기모 맨투맨,\"20,000\",2,2,\"20,000\",2\n"
	summary, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026-01-10",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(second),
	})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 1 {
		t.Fatalf("created=%d updated=%d, want 0/1", summary.Created, summary.Updated)
	}

	var count int64
	db.Model(&models.IntegratedRecord{}).Where("tenant_id = ? AND option_id = ?", 1, "OPT-1").Count(&count)
	if count != 1 {
		t.Fatalf("record count = %d, want 1", count)
	}
	var rec models.IntegratedRecord
	db.Where("tenant_id = ? AND option_id = ?", 1, "OPT-1").First(&rec)
	if rec.SalesAmount != 20000 {
		t.Fatalf("sales = %v, want 20000", rec.SalesAmount)
	}
}

func TestReconcileInvalidDate(t *testing.T) {
	svc, _ := setupReconcileServiceTest(t)

	_, err := svc.Reconcile(ReconcileInput{
		TenantID:      1,
		TargetDate:    "2026/01/10",
		SalesFilename: "sales.csv",
		SalesFile:     strings.NewReader(salesCSVHeader),
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}
