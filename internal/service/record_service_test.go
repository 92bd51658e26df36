package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRecordServiceTest(t *testing.T) (*RecordService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:record_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.IntegratedRecord{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewRecordService(repository.NewIntegratedRecordRepository(db), settlement.DefaultCostPolicy()), db
}

func seedServiceRecord(t *testing.T, db *gorm.DB, tenantID uint, optionID, date string) *models.IntegratedRecord {
	t.Helper()
	rec := models.IntegratedRecord{
		TenantID:      tenantID,
		OptionID:      optionID,
		Date:          date,
		ProductName:   "기모 맨투맨",
		SalesAmount:   100000,
		SalesQuantity: 10,
		OrderCount:    9,
		AdCost:        5000,
		CostPrice:     1000,
		FeeAmount:     500,
		VAT:           300,
	}
	settlement.DefaultCostPolicy().ApplyMetrics(&rec)
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	return &rec
}

func TestRecordUpdateRecalculatesMetrics(t *testing.T) {
	svc, db := setupRecordServiceTest(t)
	rec := seedServiceRecord(t, db, 1, "OPT-1", "2026-01-10")

	newSales := 50000.0
	newAdCost := 10000.0
	updated, err := svc.Update(1, rec.ID, UpdateRecordInput{
		SalesAmount: &newSales,
		AdCost:      &newAdCost,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// 총원가 1800*10, 순이익 50000-18000-10000*1.1
	if updated.TotalCost != 18000 {
		t.Fatalf("total cost want 18000 got %v", updated.TotalCost)
	}
	wantProfit := 50000.0 - 18000.0 - 10000.0*1.1
	if updated.NetProfit != wantProfit {
		t.Fatalf("net profit want %v got %v", wantProfit, updated.NetProfit)
	}
	if updated.ActualMarginRate != wantProfit/50000*100 {
		t.Fatalf("actual margin rate want %v got %v", wantProfit/50000*100, updated.ActualMarginRate)
	}
	// 수정하지 않은 필드는 유지된다
	if updated.SalesQuantity != 10 {
		t.Fatalf("sales quantity should be kept, got %d", updated.SalesQuantity)
	}
}

func TestRecordUpdateTenantScoped(t *testing.T) {
	svc, db := setupRecordServiceTest(t)
	rec := seedServiceRecord(t, db, 1, "OPT-1", "2026-01-10")

	newSales := 1.0
	if _, err := svc.Update(2, rec.ID, UpdateRecordInput{SalesAmount: &newSales}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-tenant update want ErrNotFound got %v", err)
	}
}

func TestRecordDeleteByIDs(t *testing.T) {
	svc, db := setupRecordServiceTest(t)
	a := seedServiceRecord(t, db, 1, "OPT-1", "2026-01-10")
	b := seedServiceRecord(t, db, 1, "OPT-2", "2026-01-10")
	other := seedServiceRecord(t, db, 2, "OPT-1", "2026-01-10")

	deleted, err := svc.DeleteByIDs(1, []uint{a.ID, b.ID, other.ID})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// 다른 테넌트 레코드는 건드리지 않는다
	if deleted != 2 {
		t.Fatalf("deleted want 2 got %d", deleted)
	}

	var count int64
	if err := db.Model(&models.IntegratedRecord{}).Where("tenant_id = ?", 2).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("tenant 2 record should survive, count %d", count)
	}
}

func TestRecordDeleteAll(t *testing.T) {
	svc, db := setupRecordServiceTest(t)
	seedServiceRecord(t, db, 1, "OPT-1", "2026-01-10")
	seedServiceRecord(t, db, 1, "OPT-2", "2026-01-11")
	seedServiceRecord(t, db, 2, "OPT-1", "2026-01-10")

	deleted, err := svc.DeleteAll(1)
	if err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted want 2 got %d", deleted)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2026-01-10"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "2026/01/10", "01-10-2026", "2026-13-40"} {
		if _, err := parseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("date %q want ErrInvalidDate got %v", bad, err)
		}
	}
}
