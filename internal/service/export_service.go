package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 내보내기 그룹/기간 단위
const (
	ExportGroupOption  = "option"
	ExportGroupProduct = "product"
	ExportPeriodDay    = "day"
	ExportPeriodTotal  = "total"
)

// ExportService 정산 리포트 내보내기 서비스
// 집계 화면과 같은 보정 수치를 xlsx 로 직렬화한다. 기간 전체로 묶을
// 때의 비율도 합산값에서 다시 구한다.
type ExportService struct {
	recordRepo repository.IntegratedRecordRepository
	fakeRepo   repository.FakePurchaseRepository
	policy     settlement.CostPolicy
}

// NewExportService 내보내기 서비스 생성
func NewExportService(recordRepo repository.IntegratedRecordRepository, fakeRepo repository.FakePurchaseRepository, policy settlement.CostPolicy) *ExportService {
	return &ExportService{
		recordRepo: recordRepo,
		fakeRepo:   fakeRepo,
		policy:     policy,
	}
}

// ExportQuery 내보내기 조회 조건
type ExportQuery struct {
	TenantID uint
	DateFrom string
	DateTo   string
	Product  string
	OptionID string
	GroupBy  string // option | product
	Period   string // day | total
}

type exportRow struct {
	date        string
	optionID    string
	productName string
	optionName  string
	totals      MetricTotals
}

// ExportRecords 보정 정산 리포트 xlsx 생성
func (s *ExportService) ExportRecords(q ExportQuery) ([]byte, string, error) {
	if q.GroupBy == "" {
		q.GroupBy = ExportGroupOption
	}
	if q.Period == "" {
		q.Period = ExportPeriodDay
	}
	if (q.GroupBy != ExportGroupOption && q.GroupBy != ExportGroupProduct) ||
		(q.Period != ExportPeriodDay && q.Period != ExportPeriodTotal) {
		return nil, "", ErrInvalidInput
	}

	records, err := s.recordRepo.ListRange(repository.RecordRangeFilter{
		TenantID: q.TenantID,
		OptionID: q.OptionID,
		Product:  q.Product,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	})
	if err != nil {
		return nil, "", err
	}
	fakes, err := s.fakeRepo.ListRange(repository.FakePurchaseListFilter{
		TenantID: q.TenantID,
		OptionID: q.OptionID,
		Product:  q.Product,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	})
	if err != nil {
		return nil, "", err
	}
	adjustments, _ := s.policy.BuildAdjustments(records, fakes)

	rows := s.groupRows(q, records, adjustments)

	payload, err := renderExportFile(q, rows)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("settlement_%s_%s_%s.xlsx", q.GroupBy, q.Period, time.Now().Format("20060102"))
	return payload, filename, nil
}

func (s *ExportService) groupRows(q ExportQuery, records []models.IntegratedRecord, adjustments map[settlement.RecordKey]settlement.Adjustment) []exportRow {
	type groupKey struct {
		date string
		name string
	}
	accs := map[groupKey]*totalsAcc{}
	meta := map[groupKey]exportRow{}

	for i := range records {
		rec := &records[i]
		v := adjustments[settlement.RecordKey{Date: rec.Date, OptionID: rec.OptionID}].Apply(rec)

		key := groupKey{}
		if q.Period == ExportPeriodDay {
			key.date = rec.Date
		}
		if q.GroupBy == ExportGroupOption {
			key.name = rec.OptionID
		} else {
			key.name = rec.ProductName
		}

		acc, ok := accs[key]
		if !ok {
			acc = &totalsAcc{}
			accs[key] = acc
			row := exportRow{date: key.date, productName: rec.ProductName}
			if q.GroupBy == ExportGroupOption {
				row.optionID = rec.OptionID
				row.optionName = rec.OptionName
			}
			meta[key] = row
		}
		acc.add(rec, v)
	}

	rows := make([]exportRow, 0, len(accs))
	for key, acc := range accs {
		row := meta[key]
		row.totals = acc.finalize(s.policy.AdVATMultiplier)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].date != rows[j].date {
			return rows[i].date < rows[j].date
		}
		if rows[i].productName != rows[j].productName {
			return rows[i].productName < rows[j].productName
		}
		return rows[i].optionID < rows[j].optionID
	})
	return rows
}

// round2 표시용 반올림. 계산이 아니라 직렬화 시점에만 쓴다.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func renderExportFile(q ExportQuery, rows []exportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "정산 리포트"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := []interface{}{"일자"}
	if q.GroupBy == ExportGroupOption {
		headers = append(headers, "옵션ID", "상품명", "옵션명")
	} else {
		headers = append(headers, "상품명")
	}
	headers = append(headers,
		"보정 매출", "보정 수량", "주문수",
		"보정 광고비", "보정 총원가", "보정 순이익",
		"마진율(%)", "원가율(%)", "광고비율(%)", "ROAS(%)",
	)
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		date := row.date
		if date == "" {
			date = "전체"
		}
		values := []interface{}{date}
		if q.GroupBy == ExportGroupOption {
			values = append(values, row.optionID, row.productName, row.optionName)
		} else {
			values = append(values, row.productName)
		}
		t := row.totals
		values = append(values,
			round2(t.Sales), t.Quantity, t.OrderCount,
			round2(t.AdCost), round2(t.TotalCost), round2(t.Profit),
			round2(t.MarginRate), round2(t.CostRate), round2(t.AdCostRate), round2(t.ROAS),
		)
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
