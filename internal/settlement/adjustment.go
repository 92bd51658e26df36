package settlement

import (
	"fmt"

	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"
)

// RecordKey 레코드 식별 키 (일자 + 옵션)
type RecordKey struct {
	Date     string
	OptionID string
}

// Warning 계산 중 발견한 데이터 정합성 경고
// 보정 계산은 경고를 내더라도 절대 실패하지 않는다. 업스트림 데이터
// 품질 문제는 리포트를 막는 사유가 아니다.
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Adjustment 레코드 한 건에 적용할 가구매 보정 델타
type Adjustment struct {
	SalesDeduction    float64 // 차감할 허위 매출
	QuantityDeduction int     // 차감할 허위 수량
	CostSaved         float64 // 실제로 나가지 않은 원가 (환입)
	FakePurchaseCost  float64 // 가구매 집행 비용 (광고비성 지출)
}

// AdjustedValues 보정 적용 후 리포트 값
type AdjustedValues struct {
	Sales     float64 `json:"adjusted_sales"`
	Quantity  int     `json:"adjusted_quantity"`
	Profit    float64 `json:"adjusted_profit"`
	AdCost    float64 `json:"adjusted_ad_cost"`
	TotalCost float64 `json:"adjusted_total_cost"`
}

// Apply 저장된 레코드 값에 보정 델타 적용
// 저장 데이터는 건드리지 않는다. 보정은 조회 시점 오버레이다.
func (a Adjustment) Apply(rec *models.IntegratedRecord) AdjustedValues {
	return AdjustedValues{
		Sales:     rec.SalesAmount - a.SalesDeduction,
		Quantity:  rec.SalesQuantity - a.QuantityDeduction,
		Profit:    rec.NetProfit - a.SalesDeduction + a.CostSaved - a.FakePurchaseCost,
		AdCost:    rec.AdCost + a.FakePurchaseCost,
		TotalCost: rec.TotalCost - a.CostSaved,
	}
}

// BuildAdjustments 레코드와 가구매 목록으로 보정 델타 맵 생성
//
// 레코드에 같은 (일자, 옵션) 키가 중복되면 뒤의 것이 단가 조회에
// 쓰이며 경고를 남긴다. 대응 레코드가 없는 가구매는 환입 원가를 0 으로
// 두고 경고만 남긴다. 보정 후 수량이 음수가 되는 경우도 자르지 않고
// 경고만 남긴다.
func (p CostPolicy) BuildAdjustments(records []models.IntegratedRecord, fakes []models.FakePurchase) (map[RecordKey]Adjustment, []Warning) {
	var warnings []Warning

	unitCosts := make(map[RecordKey]float64, len(records))
	quantities := make(map[RecordKey]int, len(records))
	for i := range records {
		rec := &records[i]
		key := RecordKey{Date: rec.Date, OptionID: rec.OptionID}
		if _, ok := unitCosts[key]; ok {
			warnings = append(warnings, Warning{
				Type:    constants.WarnDuplicateRecordKey,
				Message: fmt.Sprintf("중복 레코드 키: date=%s option_id=%s", rec.Date, rec.OptionID),
			})
		}
		unitCosts[key] = UnitCost(rec.CostPrice, rec.FeeAmount, rec.VAT)
		quantities[key] = rec.SalesQuantity
	}

	adjustments := make(map[RecordKey]Adjustment, len(fakes))
	for i := range fakes {
		fp := &fakes[i]
		key := RecordKey{Date: fp.Date, OptionID: fp.OptionID}

		unitCost, ok := unitCosts[key]
		if !ok {
			warnings = append(warnings, Warning{
				Type:    constants.WarnFakeWithoutRecord,
				Message: fmt.Sprintf("대응 레코드 없는 가구매: date=%s option_id=%s", fp.Date, fp.OptionID),
			})
			// 적용할 레코드 자체가 없으므로 환입 0 델타를 저장하는 것과 결과가 같다
			continue
		}

		adj := Adjustment{
			SalesDeduction:    fp.UnitPrice * float64(fp.Quantity),
			QuantityDeduction: fp.Quantity,
			CostSaved:         unitCost * float64(fp.Quantity),
			FakePurchaseCost:  p.FakePurchaseOverlayCost(fp.Quantity, fp.UnitPrice),
		}

		if quantities[key]-adj.QuantityDeduction < 0 {
			warnings = append(warnings, Warning{
				Type:    constants.WarnNegativeQuantity,
				Message: fmt.Sprintf("보정 후 수량 음수: date=%s option_id=%s quantity=%d deduction=%d", fp.Date, fp.OptionID, quantities[key], adj.QuantityDeduction),
			})
		}

		adjustments[key] = adj
	}

	return adjustments, warnings
}
