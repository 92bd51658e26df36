package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/parser"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"gorm.io/gorm"
)

// ReconcileService 정산 파일 통합 서비스
// 판매/광고 파일과 마진 마스터를 (옵션, 일자) 단위로 합쳐
// IntegratedRecord 로 upsert 한다. 업로드 한 번이 트랜잭션 하나다.
type ReconcileService struct {
	recordRepo    repository.IntegratedRecordRepository
	marginRepo    repository.ProductMarginRepository
	uploadLogRepo repository.UploadLogRepository
	policy        settlement.CostPolicy
}

// NewReconcileService 정산 통합 서비스 생성
func NewReconcileService(
	recordRepo repository.IntegratedRecordRepository,
	marginRepo repository.ProductMarginRepository,
	uploadLogRepo repository.UploadLogRepository,
	policy settlement.CostPolicy,
) *ReconcileService {
	return &ReconcileService{
		recordRepo:    recordRepo,
		marginRepo:    marginRepo,
		uploadLogRepo: uploadLogRepo,
		policy:        policy,
	}
}

// ReconcileInput 업로드 입력
// 광고 파일은 없어도 된다 (nil 허용).
type ReconcileInput struct {
	TenantID      uint
	TargetDate    string
	SalesFilename string
	SalesFile     io.Reader
	AdsFilename   string
	AdsFile       io.Reader
}

// ReconcileSummary 업로드 처리 요약
type ReconcileSummary struct {
	TargetDate    string               `json:"target_date"`
	Upserted      int                  `json:"upserted"`
	Created       int                  `json:"created"`
	Updated       int                  `json:"updated"`
	AdsMatched    int                  `json:"ads_matched"`
	MarginMatched int                  `json:"margin_matched"`
	Skipped       int                  `json:"skipped"`
	Warnings      []settlement.Warning `json:"warnings"`
	DurationMS    int64                `json:"duration_ms"`
}

// Reconcile 정산 파일 통합 실행
//
// 판매 파일의 필수 컬럼 누락은 전체 실패, 광고 파일 문제는 경고 후
// 광고 없이 진행한다. 행 단위 오류는 건너뛰고 세며, DB 커밋 실패만
// 전체 롤백 사유다.
func (s *ReconcileService) Reconcile(input ReconcileInput) (*ReconcileSummary, error) {
	started := time.Now()

	targetDate, err := parseDate(input.TargetDate)
	if err != nil {
		return nil, err
	}

	salesTable, err := parser.ReadTable(input.SalesFilename, input.SalesFile)
	if err != nil {
		return nil, err
	}
	salesRows, err := parser.ParseSales(salesTable)
	if err != nil {
		return nil, err
	}

	summary := &ReconcileSummary{TargetDate: targetDate}

	adsByOption := map[string]parser.AdRow{}
	if input.AdsFile != nil {
		adsTable, err := parser.ReadTable(input.AdsFilename, input.AdsFile)
		if err != nil {
			summary.Warnings = append(summary.Warnings, settlement.Warning{
				Type:    constants.WarnAdsColumnsMissing,
				Message: fmt.Sprintf("광고 파일을 읽지 못했습니다: %v", err),
			})
		} else if adRows, ok := parser.ParseAds(adsTable); ok {
			adsByOption = parser.GroupAdsByOption(adRows)
		} else {
			summary.Warnings = append(summary.Warnings, settlement.Warning{
				Type:    constants.WarnAdsColumnsMissing,
				Message: "광고 파일에 필요한 컬럼이 없어 광고 데이터 없이 진행합니다",
			})
		}
	}

	margins, err := s.marginRepo.MapByTenant(input.TenantID)
	if err != nil {
		return nil, err
	}

	// 옵션ID 중복은 첫 행만 남긴다
	seen := make(map[string]bool, len(salesRows))
	rows := make([]parser.SalesRow, 0, len(salesRows))
	for _, row := range salesRows {
		if seen[row.OptionID] {
			summary.Warnings = append(summary.Warnings, settlement.Warning{
				Type:    constants.WarnDuplicateRecordKey,
				Message: fmt.Sprintf("판매 파일 내 옵션ID 중복, 첫 행만 사용: %s", row.OptionID),
			})
			continue
		}
		seen[row.OptionID] = true

		// 판매도 수량도 광고비도 없는 행은 잡음이다. 음수(환불)는 남긴다.
		ad := adsByOption[row.OptionID]
		if row.SalesAmount == 0 && row.SalesQuantity == 0 && ad.AdCost == 0 {
			continue
		}
		rows = append(rows, row)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.recordRepo.WithTx(tx)
		for _, row := range rows {
			if err := s.upsertRow(repo, input.TenantID, targetDate, row, adsByOption, margins, summary); err != nil {
				summary.Skipped++
				summary.Warnings = append(summary.Warnings, settlement.Warning{
					Type:    constants.WarnRowSkipped,
					Message: fmt.Sprintf("행 처리 실패, 건너뜀: option_id=%s err=%v", row.OptionID, err),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Upserted = summary.Created + summary.Updated
	summary.DurationMS = time.Since(started).Milliseconds()

	s.writeUploadLog(input, summary)
	invalidateMetricsCache(input.TenantID)

	logger.Infow("reconcile_done",
		"tenant_id", input.TenantID,
		"target_date", targetDate,
		"upserted", summary.Upserted,
		"ads_matched", summary.AdsMatched,
		"margin_matched", summary.MarginMatched,
		"skipped", summary.Skipped,
		"warnings", len(summary.Warnings),
		"duration_ms", summary.DurationMS,
	)
	return summary, nil
}

func (s *ReconcileService) upsertRow(
	repo *repository.GormIntegratedRecordRepository,
	tenantID uint,
	targetDate string,
	row parser.SalesRow,
	adsByOption map[string]parser.AdRow,
	margins map[string]models.ProductMargin,
	summary *ReconcileSummary,
) error {
	rec, err := repo.GetByKey(tenantID, row.OptionID, targetDate)
	if err != nil {
		return err
	}
	isNew := rec == nil
	if isNew {
		rec = &models.IntegratedRecord{
			TenantID: tenantID,
			OptionID: row.OptionID,
			Date:     targetDate,
		}
	}

	rec.OptionName = row.OptionName
	rec.ProductName = row.ProductName
	rec.SalesAmount = row.SalesAmount
	rec.SalesQuantity = row.SalesQuantity
	rec.OrderCount = row.OrderCount
	rec.TotalSales = row.TotalSales
	rec.TotalSalesQuantity = row.TotalSalesQuantity

	// 광고/마진은 left join, 없으면 0
	ad, adMatched := adsByOption[row.OptionID]
	rec.AdCost = ad.AdCost
	rec.Impressions = ad.Impressions
	rec.Clicks = ad.Clicks
	rec.AdSalesQuantity = ad.AdSalesQuantity
	rec.ConversionSales = ad.ConversionSales

	margin, marginMatched := margins[row.OptionID]
	rec.CostPrice = margin.CostPrice
	rec.SellingPrice = margin.SellingPrice
	rec.MarginAmount = margin.MarginAmount
	rec.MarginRate = margin.MarginRate
	rec.FeeRate = margin.FeeRate
	rec.FeeAmount = margin.FeeAmount
	rec.VAT = margin.VAT

	s.policy.ApplyMetrics(rec)

	if isNew {
		if err := repo.Create(rec); err != nil {
			return err
		}
		summary.Created++
	} else {
		if err := repo.Update(rec); err != nil {
			return err
		}
		summary.Updated++
	}
	if adMatched {
		summary.AdsMatched++
	}
	if marginMatched {
		summary.MarginMatched++
	}
	return nil
}

// writeUploadLog 업로드 이력 기록. 실패해도 업로드 자체는 성공으로 둔다.
func (s *ReconcileService) writeUploadLog(input ReconcileInput, summary *ReconcileSummary) {
	warnings := []byte("[]")
	if len(summary.Warnings) > 0 {
		if payload, err := json.Marshal(summary.Warnings); err == nil {
			warnings = payload
		}
	}
	log := &models.UploadLog{
		TenantID:      input.TenantID,
		TargetDate:    summary.TargetDate,
		SalesFile:     input.SalesFilename,
		AdsFile:       input.AdsFilename,
		Upserted:      summary.Upserted,
		AdsMatched:    summary.AdsMatched,
		MarginMatched: summary.MarginMatched,
		Skipped:       summary.Skipped,
		Warnings:      string(warnings),
		DurationMS:    summary.DurationMS,
	}
	if err := s.uploadLogRepo.Create(log); err != nil {
		logger.Warnw("upload_log_write_failed", "tenant_id", input.TenantID, "error", err)
	}
}

// ListUploadLogs 업로드 이력 조회
func (s *ReconcileService) ListUploadLogs(filter repository.UploadLogListFilter) ([]models.UploadLog, int64, error) {
	return s.uploadLogRepo.List(filter)
}
