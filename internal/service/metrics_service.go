package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"
)

const metricsCacheTTL = 5 * time.Minute

// MetricsService 집계 리포트 서비스
// 저장 레코드에 가구매 보정을 얹은 뒤 일/상품/옵션 단위로 합산한다.
// 비율은 항상 합산된 분자/분모에서 다시 구하며, 행별 비율을 평균내지
// 않는다.
type MetricsService struct {
	recordRepo repository.IntegratedRecordRepository
	fakeRepo   repository.FakePurchaseRepository
	policy     settlement.CostPolicy
}

// NewMetricsService 집계 서비스 생성
func NewMetricsService(recordRepo repository.IntegratedRecordRepository, fakeRepo repository.FakePurchaseRepository, policy settlement.CostPolicy) *MetricsService {
	return &MetricsService{
		recordRepo: recordRepo,
		fakeRepo:   fakeRepo,
		policy:     policy,
	}
}

// MetricsQuery 집계 조회 조건
type MetricsQuery struct {
	TenantID uint
	DateFrom string
	DateTo   string
	Product  string
	OptionID string
	Refresh  bool
}

// MetricTotals 보정 적용 후 합산 수치와 재산출 비율
type MetricTotals struct {
	Sales           float64 `json:"sales"`
	Quantity        int     `json:"quantity"`
	OrderCount      int     `json:"order_count"`
	AdCost          float64 `json:"ad_cost"`
	TotalCost       float64 `json:"total_cost"`
	Profit          float64 `json:"profit"`
	ConversionSales float64 `json:"conversion_sales"`
	Impressions     int     `json:"impressions"`
	Clicks          int     `json:"clicks"`
	MarginRate      float64 `json:"margin_rate"`
	CostRate        float64 `json:"cost_rate"`
	AdCostRate      float64 `json:"ad_cost_rate"`
	ROAS            float64 `json:"roas"`
}

// DailyMetric 일 단위 집계
type DailyMetric struct {
	Date string `json:"date"`
	MetricTotals
}

// ProductMetric 상품 단위 집계
type ProductMetric struct {
	ProductName string `json:"product_name"`
	MetricTotals
}

// OptionMetric 옵션 단위 집계
type OptionMetric struct {
	OptionID    string `json:"option_id"`
	OptionName  string `json:"option_name"`
	ProductName string `json:"product_name"`
	MetricTotals
}

// DailyMetricsResult 일별 집계 응답
type DailyMetricsResult struct {
	Days   []DailyMetric `json:"days"`
	Totals MetricTotals  `json:"totals"`
}

// ProductMetricsResult 상품별 집계 응답
type ProductMetricsResult struct {
	Products []ProductMetric `json:"products"`
	Totals   MetricTotals    `json:"totals"`
}

// OptionMetricsResult 옵션별 집계 응답
type OptionMetricsResult struct {
	Options []OptionMetric `json:"options"`
	Totals  MetricTotals   `json:"totals"`
}

// totalsAcc 합산 누적기. rawAdCost 는 보정 전 실집행 광고비로,
// ROAS 분모와 광고비율 분자의 부가세 적용에 쓴다.
type totalsAcc struct {
	MetricTotals
	rawAdCost float64
}

func (a *totalsAcc) add(rec *models.IntegratedRecord, v settlement.AdjustedValues) {
	a.Sales += v.Sales
	a.Quantity += v.Quantity
	a.OrderCount += rec.OrderCount
	a.AdCost += v.AdCost
	a.TotalCost += v.TotalCost
	a.Profit += v.Profit
	a.ConversionSales += rec.ConversionSales
	a.Impressions += rec.Impressions
	a.Clicks += rec.Clicks
	a.rawAdCost += rec.AdCost
}

// finalize 합산값에서 비율 재산출
// 광고비율 분자는 실집행 광고비에 부가세 배수를 적용한 값에 가구매
// 비용(AdCost 합계 중 실집행분 초과분)을 더한 것으로, 레코드 단건의
// 광고비율 정의와 같은 기준을 쓴다.
func (a *totalsAcc) finalize(adVAT float64) MetricTotals {
	t := a.MetricTotals
	if t.Sales > 0 {
		t.MarginRate = t.Profit / t.Sales * 100
		t.CostRate = (t.Sales - t.TotalCost) / t.Sales * 100
		t.AdCostRate = (a.rawAdCost*adVAT + (t.AdCost - a.rawAdCost)) / t.Sales * 100
	}
	if a.rawAdCost > 0 {
		t.ROAS = t.ConversionSales / a.rawAdCost * 100
	}
	return t
}

// loadAdjusted 구간 레코드와 보정 델타 로드
func (s *MetricsService) loadAdjusted(q MetricsQuery) ([]models.IntegratedRecord, map[settlement.RecordKey]settlement.Adjustment, error) {
	records, err := s.recordRepo.ListRange(repository.RecordRangeFilter{
		TenantID: q.TenantID,
		OptionID: q.OptionID,
		Product:  q.Product,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	})
	if err != nil {
		return nil, nil, err
	}

	fakes, err := s.fakeRepo.ListRange(repository.FakePurchaseListFilter{
		TenantID: q.TenantID,
		OptionID: q.OptionID,
		Product:  q.Product,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	})
	if err != nil {
		return nil, nil, err
	}

	adjustments, warnings := s.policy.BuildAdjustments(records, fakes)
	for _, w := range warnings {
		logger.Warnw("adjustment_warning", "tenant_id", q.TenantID, "type", w.Type, "message", w.Message)
	}
	return records, adjustments, nil
}

func metricsCacheKey(q MetricsQuery, kind string) string {
	return fmt.Sprintf("%s%s:%s:%s:%s:%s", metricsCachePrefix(q.TenantID), kind, q.DateFrom, q.DateTo, q.Product, q.OptionID)
}

// Daily 일별 집계
func (s *MetricsService) Daily(ctx context.Context, q MetricsQuery) (*DailyMetricsResult, error) {
	key := metricsCacheKey(q, "daily")
	if !q.Refresh {
		var cached DailyMetricsResult
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	records, adjustments, err := s.loadAdjusted(q)
	if err != nil {
		return nil, err
	}

	byDate := map[string]*totalsAcc{}
	var total totalsAcc
	for i := range records {
		rec := &records[i]
		v := adjustments[settlement.RecordKey{Date: rec.Date, OptionID: rec.OptionID}].Apply(rec)

		acc, ok := byDate[rec.Date]
		if !ok {
			acc = &totalsAcc{}
			byDate[rec.Date] = acc
		}
		acc.add(rec, v)
		total.add(rec, v)
	}

	days := make([]DailyMetric, 0, len(byDate))
	for date, acc := range byDate {
		days = append(days, DailyMetric{Date: date, MetricTotals: acc.finalize(s.policy.AdVATMultiplier)})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	result := &DailyMetricsResult{Days: days, Totals: total.finalize(s.policy.AdVATMultiplier)}
	_ = cache.SetJSON(ctx, key, result, metricsCacheTTL)
	return result, nil
}

// Products 상품별 집계
// 보정 후 매출 합계가 정확히 0 인 상품은 목록에서 뺀다. 음수는 남긴다.
func (s *MetricsService) Products(ctx context.Context, q MetricsQuery) (*ProductMetricsResult, error) {
	key := metricsCacheKey(q, "products")
	if !q.Refresh {
		var cached ProductMetricsResult
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	records, adjustments, err := s.loadAdjusted(q)
	if err != nil {
		return nil, err
	}

	byProduct := map[string]*totalsAcc{}
	var total totalsAcc
	for i := range records {
		rec := &records[i]
		v := adjustments[settlement.RecordKey{Date: rec.Date, OptionID: rec.OptionID}].Apply(rec)

		acc, ok := byProduct[rec.ProductName]
		if !ok {
			acc = &totalsAcc{}
			byProduct[rec.ProductName] = acc
		}
		acc.add(rec, v)
		total.add(rec, v)
	}

	products := make([]ProductMetric, 0, len(byProduct))
	for name, acc := range byProduct {
		totals := acc.finalize(s.policy.AdVATMultiplier)
		if totals.Sales == 0 {
			continue
		}
		products = append(products, ProductMetric{ProductName: name, MetricTotals: totals})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Sales != products[j].Sales {
			return products[i].Sales > products[j].Sales
		}
		return products[i].ProductName < products[j].ProductName
	})

	result := &ProductMetricsResult{Products: products, Totals: total.finalize(s.policy.AdVATMultiplier)}
	_ = cache.SetJSON(ctx, key, result, metricsCacheTTL)
	return result, nil
}

// Options 옵션별 집계
// 상품별 집계와 같은 규칙으로 매출 0 옵션은 제외한다.
func (s *MetricsService) Options(ctx context.Context, q MetricsQuery) (*OptionMetricsResult, error) {
	key := metricsCacheKey(q, "options")
	if !q.Refresh {
		var cached OptionMetricsResult
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	records, adjustments, err := s.loadAdjusted(q)
	if err != nil {
		return nil, err
	}

	type optionInfo struct {
		optionName  string
		productName string
	}
	byOption := map[string]*totalsAcc{}
	names := map[string]optionInfo{}
	var total totalsAcc
	for i := range records {
		rec := &records[i]
		v := adjustments[settlement.RecordKey{Date: rec.Date, OptionID: rec.OptionID}].Apply(rec)

		acc, ok := byOption[rec.OptionID]
		if !ok {
			acc = &totalsAcc{}
			byOption[rec.OptionID] = acc
			names[rec.OptionID] = optionInfo{optionName: rec.OptionName, productName: rec.ProductName}
		}
		acc.add(rec, v)
		total.add(rec, v)
	}

	options := make([]OptionMetric, 0, len(byOption))
	for optionID, acc := range byOption {
		totals := acc.finalize(s.policy.AdVATMultiplier)
		if totals.Sales == 0 {
			continue
		}
		options = append(options, OptionMetric{
			OptionID:     optionID,
			OptionName:   names[optionID].optionName,
			ProductName:  names[optionID].productName,
			MetricTotals: totals,
		})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Sales != options[j].Sales {
			return options[i].Sales > options[j].Sales
		}
		return options[i].OptionID < options[j].OptionID
	})

	result := &OptionMetricsResult{Options: options, Totals: total.finalize(s.policy.AdVATMultiplier)}
	_ = cache.SetJSON(ctx, key, result, metricsCacheTTL)
	return result, nil
}
