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

func setupFakePurchaseServiceTest(t *testing.T) *FakePurchaseService {
	t.Helper()
	dsn := fmt.Sprintf("file:fake_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.FakePurchase{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewFakePurchaseService(repository.NewFakePurchaseRepository(db), settlement.DefaultCostPolicy())
}

func TestFakePurchaseCreateComputesCost(t *testing.T) {
	svc := setupFakePurchaseServiceTest(t)

	fp, err := svc.Create(1, FakePurchaseInput{
		OptionID:  "OPT-1",
		Date:      "2026-01-10",
		Quantity:  2,
		UnitPrice: 10000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fp.CalculatedCost != 5700 || fp.TotalCost != 11400 {
		t.Fatalf("cost not computed: %+v", fp)
	}
}

func TestFakePurchaseUniquePerKey(t *testing.T) {
	svc := setupFakePurchaseServiceTest(t)

	input := FakePurchaseInput{OptionID: "OPT-1", Date: "2026-01-10", Quantity: 1, UnitPrice: 5000}
	if _, err := svc.Create(1, input); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(1, input); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
	// 날짜가 다르면 허용
	input.Date = "2026-01-11"
	if _, err := svc.Create(1, input); err != nil {
		t.Fatalf("different date create: %v", err)
	}
}

func TestFakePurchaseUpdateRecomputesCost(t *testing.T) {
	svc := setupFakePurchaseServiceTest(t)

	fp, err := svc.Create(1, FakePurchaseInput{OptionID: "OPT-1", Date: "2026-01-10", Quantity: 1, UnitPrice: 5000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(1, fp.ID, FakePurchaseInput{OptionID: "OPT-1", Date: "2026-01-10", Quantity: 2, UnitPrice: 10000})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CalculatedCost != 5700 || updated.TotalCost != 11400 {
		t.Fatalf("cost not recomputed: %+v", updated)
	}
}

func TestFakePurchaseInvalidInput(t *testing.T) {
	svc := setupFakePurchaseServiceTest(t)

	if _, err := svc.Create(1, FakePurchaseInput{OptionID: "OPT-1", Date: "2026-01-10", Quantity: 0, UnitPrice: 5000}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(1, FakePurchaseInput{OptionID: "OPT-1", Date: "not-a-date", Quantity: 1, UnitPrice: 5000}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}

func TestFakePurchaseDeleteScopedToTenant(t *testing.T) {
	svc := setupFakePurchaseServiceTest(t)

	fp, err := svc.Create(1, FakePurchaseInput{OptionID: "OPT-1", Date: "2026-01-10", Quantity: 1, UnitPrice: 5000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(2, fp.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-tenant delete must fail, got %v", err)
	}
	if err := svc.Delete(1, fp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
