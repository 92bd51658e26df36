package settlement

import (
	"testing"

	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"
)

func TestBuildAdjustments(t *testing.T) {
	p := DefaultCostPolicy()

	records := []models.IntegratedRecord{
		{
			Date:          "2026-01-10",
			OptionID:      "OPT-1",
			SalesAmount:   100000,
			SalesQuantity: 10,
			NetProfit:     20000,
			TotalCost:     50000,
			AdCost:        5000,
			CostPrice:     1000,
			FeeAmount:     500,
			VAT:           300,
		},
	}
	fakes := []models.FakePurchase{
		{Date: "2026-01-10", OptionID: "OPT-1", Quantity: 2, UnitPrice: 8000},
	}

	adjustments, warnings := p.BuildAdjustments(records, fakes)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	adj, ok := adjustments[RecordKey{Date: "2026-01-10", OptionID: "OPT-1"}]
	if !ok {
		t.Fatal("adjustment not found")
	}
	if adj.SalesDeduction != 16000 {
		t.Fatalf("sales_deduction = %v, want 16000", adj.SalesDeduction)
	}
	if adj.QuantityDeduction != 2 {
		t.Fatalf("quantity_deduction = %v, want 2", adj.QuantityDeduction)
	}
	if adj.CostSaved != 3600 {
		t.Fatalf("cost_saved = %v, want 3600", adj.CostSaved)
	}
	if adj.FakePurchaseCost != 6420 {
		t.Fatalf("fake_purchase_cost = %v, want 6420", adj.FakePurchaseCost)
	}

	v := adj.Apply(&records[0])
	if v.Sales != 84000 {
		t.Fatalf("adjusted_sales = %v, want 84000", v.Sales)
	}
	if v.Quantity != 8 {
		t.Fatalf("adjusted_quantity = %v, want 8", v.Quantity)
	}
	if v.Profit != 1180 {
		t.Fatalf("adjusted_profit = %v, want 1180", v.Profit)
	}
	if v.AdCost != 11420 {
		t.Fatalf("adjusted_ad_cost = %v, want 11420", v.AdCost)
	}
	if v.TotalCost != 50000-3600 {
		t.Fatalf("adjusted_total_cost = %v, want 46400", v.TotalCost)
	}
}

func TestBuildAdjustmentsFakeWithoutRecord(t *testing.T) {
	p := DefaultCostPolicy()

	fakes := []models.FakePurchase{
		{Date: "2026-01-10", OptionID: "OPT-9", Quantity: 1, UnitPrice: 5000},
	}

	adjustments, warnings := p.BuildAdjustments(nil, fakes)
	if len(adjustments) != 0 {
		t.Fatalf("orphan fake must not produce an adjustment: %+v", adjustments)
	}
	if len(warnings) != 1 || warnings[0].Type != constants.WarnFakeWithoutRecord {
		t.Fatalf("want fake_without_record warning, got %+v", warnings)
	}
}

func TestBuildAdjustmentsNegativeQuantity(t *testing.T) {
	p := DefaultCostPolicy()

	records := []models.IntegratedRecord{
		{Date: "2026-01-10", OptionID: "OPT-1", SalesQuantity: 1, SalesAmount: 10000},
	}
	fakes := []models.FakePurchase{
		{Date: "2026-01-10", OptionID: "OPT-1", Quantity: 3, UnitPrice: 10000},
	}

	adjustments, warnings := p.BuildAdjustments(records, fakes)

	// 경고만 남기고 자르지 않는다
	found := false
	for _, w := range warnings {
		if w.Type == constants.WarnNegativeQuantity {
			found = true
		}
	}
	if !found {
		t.Fatalf("want negative_quantity warning, got %+v", warnings)
	}

	adj := adjustments[RecordKey{Date: "2026-01-10", OptionID: "OPT-1"}]
	v := adj.Apply(&records[0])
	if v.Quantity != -2 {
		t.Fatalf("adjusted_quantity = %v, want -2", v.Quantity)
	}
}

func TestBuildAdjustmentsDuplicateRecordKey(t *testing.T) {
	p := DefaultCostPolicy()

	records := []models.IntegratedRecord{
		{Date: "2026-01-10", OptionID: "OPT-1", CostPrice: 100, SalesQuantity: 5},
		{Date: "2026-01-10", OptionID: "OPT-1", CostPrice: 200, SalesQuantity: 5},
	}
	fakes := []models.FakePurchase{
		{Date: "2026-01-10", OptionID: "OPT-1", Quantity: 1, UnitPrice: 1000},
	}

	adjustments, warnings := p.BuildAdjustments(records, fakes)

	found := false
	for _, w := range warnings {
		if w.Type == constants.WarnDuplicateRecordKey {
			found = true
		}
	}
	if !found {
		t.Fatalf("want duplicate_record_key warning, got %+v", warnings)
	}

	// 뒤의 레코드 단가가 조회에 쓰인다
	adj := adjustments[RecordKey{Date: "2026-01-10", OptionID: "OPT-1"}]
	if adj.CostSaved != 200 {
		t.Fatalf("cost_saved = %v, want 200", adj.CostSaved)
	}
}
