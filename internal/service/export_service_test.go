package service

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"github.com/glebarez/sqlite"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupExportServiceTest(t *testing.T) (*ExportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:export_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.IntegratedRecord{}, &models.FakePurchase{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	recordRepo := repository.NewIntegratedRecordRepository(db)
	fakeRepo := repository.NewFakePurchaseRepository(db)
	return NewExportService(recordRepo, fakeRepo, settlement.DefaultCostPolicy()), db
}

func TestExportRecordsByOptionPerDay(t *testing.T) {
	svc, db := setupExportServiceTest(t)

	seedMetricsRecord(t, db, "2026-01-10", "OPT-1", "기모 맨투맨", 100000, 10, 20000, 50000, 5000)
	fake := models.FakePurchase{TenantID: 1, OptionID: "OPT-1", Date: "2026-01-10", Quantity: 2, UnitPrice: 8000}
	if err := db.Create(&fake).Error; err != nil {
		t.Fatalf("create fake failed: %v", err)
	}

	payload, filename, err := svc.ExportRecords(ExportQuery{TenantID: 1, GroupBy: ExportGroupOption, Period: ExportPeriodDay})
	if err != nil {
		t.Fatalf("ExportRecords: %v", err)
	}
	if filename == "" {
		t.Fatal("empty filename")
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("정산 리포트")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][0] != "2026-01-10" || rows[1][1] != "OPT-1" {
		t.Fatalf("unexpected data row: %+v", rows[1])
	}
	// 보정 매출 84000 이 그대로 내려간다
	if rows[1][4] != "84000" {
		t.Fatalf("adjusted sales cell = %q, want 84000", rows[1][4])
	}
}

func TestExportRecordsTotalDerivesRatesFromSums(t *testing.T) {
	svc, db := setupExportServiceTest(t)

	// 행별 마진율 50% / 10%, 합산 기준 30%
	seedMetricsRecord(t, db, "2026-01-10", "OPT-1", "기모 맨투맨", 1000, 1, 500, 0, 0)
	seedMetricsRecord(t, db, "2026-01-11", "OPT-2", "기모 맨투맨", 1000, 1, 100, 0, 0)

	payload, _, err := svc.ExportRecords(ExportQuery{TenantID: 1, GroupBy: ExportGroupProduct, Period: ExportPeriodTotal})
	if err != nil {
		t.Fatalf("ExportRecords: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("정산 리포트")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][0] != "전체" || rows[1][1] != "기모 맨투맨" {
		t.Fatalf("unexpected data row: %+v", rows[1])
	}
	// 마진율(%) 컬럼: 일자, 상품명, 매출, 수량, 주문수, 광고비, 총원가, 순이익 다음
	if rows[1][8] != "30" {
		t.Fatalf("margin rate cell = %q, want 30", rows[1][8])
	}
}

func TestExportRecordsInvalidGroup(t *testing.T) {
	svc, _ := setupExportServiceTest(t)

	_, _, err := svc.ExportRecords(ExportQuery{TenantID: 1, GroupBy: "campaign"})
	if err == nil {
		t.Fatal("want error for invalid group")
	}
}
