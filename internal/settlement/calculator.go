// Package settlement 정산 수치 계산 로직
//
// 레코드 한 건의 파생 지표(총원가, 순이익, 각종 비율)와 가구매 비용을
// 계산하는 순수 함수 모음. DB 나 HTTP 에 의존하지 않는다.
package settlement

import (
	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/models"
)

// CostPolicy 정산 계산에 쓰이는 플랫폼 수수료 정책
// 값은 설정에서 주입되며, 플랫폼 요율 변경 시 설정만 바꾸면 된다.
type CostPolicy struct {
	AdVATMultiplier      float64 // 광고비 부가세 배수
	FakePurchaseFeeRate  float64 // 가구매 결제수수료율
	FakePurchaseBaseCost float64 // 가구매 건당 기본 비용
}

// DefaultCostPolicy 기본 정책
func DefaultCostPolicy() CostPolicy {
	return CostPolicy{
		AdVATMultiplier:      1.1,
		FakePurchaseFeeRate:  0.12,
		FakePurchaseBaseCost: 4500,
	}
}

// PolicyFromConfig 설정값으로 정책 구성
func PolicyFromConfig(cfg config.SettlementConfig) CostPolicy {
	p := DefaultCostPolicy()
	if cfg.AdVATMultiplier > 0 {
		p.AdVATMultiplier = cfg.AdVATMultiplier
	}
	if cfg.FakePurchaseFeeRate > 0 {
		p.FakePurchaseFeeRate = cfg.FakePurchaseFeeRate
	}
	if cfg.FakePurchaseBaseCost > 0 {
		p.FakePurchaseBaseCost = cfg.FakePurchaseBaseCost
	}
	return p
}

// MetricInput 지표 계산 입력
type MetricInput struct {
	CostPrice       float64 // 개당 원가
	FeeAmount       float64 // 개당 수수료
	VAT             float64 // 개당 부가세
	SalesAmount     float64 // 순판매금액
	SalesQuantity   int     // 순판매수량
	AdCost          float64 // 광고비 (부가세 제외)
	ConversionSales float64 // 광고 전환매출
}

// Metrics 지표 계산 결과
type Metrics struct {
	TotalCost        float64 // 총원가
	NetProfit        float64 // 순이익
	ActualMarginRate float64 // 실마진율 (%)
	CostRate         float64 // 원가율 (%)
	AdCostRate       float64 // 광고비율 (%)
	ROAS             float64 // 광고수익률 (%)
}

// UnitCost 개당 원가 합계 (원가 + 수수료 + 부가세)
func UnitCost(costPrice, feeAmount, vat float64) float64 {
	return costPrice + feeAmount + vat
}

// CalculateMetrics 레코드 한 건의 파생 지표 계산
// 분모가 0 이하인 비율은 모두 0 으로 둔다.
func (p CostPolicy) CalculateMetrics(in MetricInput) Metrics {
	var m Metrics

	unitCost := UnitCost(in.CostPrice, in.FeeAmount, in.VAT)
	if in.SalesQuantity > 0 {
		m.TotalCost = unitCost * float64(in.SalesQuantity)
	}

	adCostWithVAT := in.AdCost * p.AdVATMultiplier
	m.NetProfit = in.SalesAmount - m.TotalCost - adCostWithVAT

	if in.SalesAmount > 0 {
		m.ActualMarginRate = m.NetProfit / in.SalesAmount * 100
		m.CostRate = (in.SalesAmount - m.TotalCost) / in.SalesAmount * 100
		m.AdCostRate = adCostWithVAT / in.SalesAmount * 100
	}
	if in.AdCost > 0 {
		m.ROAS = in.ConversionSales / in.AdCost * 100
	}
	return m
}

// ApplyMetrics 레코드의 파생 필드 재계산
// 입력 필드를 직접 수정한 뒤에는 저장 전에 반드시 호출해야 한다.
func (p CostPolicy) ApplyMetrics(rec *models.IntegratedRecord) {
	m := p.CalculateMetrics(MetricInput{
		CostPrice:       rec.CostPrice,
		FeeAmount:       rec.FeeAmount,
		VAT:             rec.VAT,
		SalesAmount:     rec.SalesAmount,
		SalesQuantity:   rec.SalesQuantity,
		AdCost:          rec.AdCost,
		ConversionSales: rec.ConversionSales,
	})
	rec.TotalCost = m.TotalCost
	rec.NetProfit = m.NetProfit
	rec.ActualMarginRate = m.ActualMarginRate
	rec.CostRate = m.CostRate
	rec.AdCostRate = m.AdCostRate
	rec.ROAS = m.ROAS
}

// FakePurchaseUnitCost 가구매 개당 집행 비용 (결제수수료 + 기본 비용)
func (p CostPolicy) FakePurchaseUnitCost(unitPrice float64) float64 {
	return unitPrice*p.FakePurchaseFeeRate + p.FakePurchaseBaseCost
}

// ApplyFakePurchaseCost 가구매 비용 필드 재계산
// 생성/수정 시 저장 전에 반드시 호출해야 한다.
func (p CostPolicy) ApplyFakePurchaseCost(fp *models.FakePurchase) {
	fp.CalculatedCost = p.FakePurchaseUnitCost(fp.UnitPrice)
	fp.TotalCost = fp.CalculatedCost * float64(fp.Quantity)
}

// FakePurchaseOverlayCost 보정 계산에서 비용으로 잡는 가구매 집행 비용
// 기본 비용은 건당 한 번만 가산한다. 저장되는 total_cost 와 계산식이
// 다른데, 보정 쪽은 리포트 합산 기준을 따른다.
func (p CostPolicy) FakePurchaseOverlayCost(quantity int, unitPrice float64) float64 {
	return float64(quantity)*unitPrice*p.FakePurchaseFeeRate + p.FakePurchaseBaseCost
}
