package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"
)

// RecordService 통합 레코드 서비스
type RecordService struct {
	recordRepo repository.IntegratedRecordRepository
	policy     settlement.CostPolicy
}

// NewRecordService 통합 레코드 서비스 생성
func NewRecordService(recordRepo repository.IntegratedRecordRepository, policy settlement.CostPolicy) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		policy:     policy,
	}
}

// metricsCachePrefix 테넌트 단위 집계 캐시 접두사
// 레코드가 바뀌면 이 접두사 아래를 전부 비운다.
func metricsCachePrefix(tenantID uint) string {
	return fmt.Sprintf("metrics:%d:", tenantID)
}

func invalidateMetricsCache(tenantID uint) {
	_ = cache.DelByPrefix(context.Background(), metricsCachePrefix(tenantID))
}

// Get 레코드 단건 조회
func (s *RecordService) Get(tenantID, id uint) (*models.IntegratedRecord, error) {
	rec, err := s.recordRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// List 레코드 목록 조회
func (s *RecordService) List(filter repository.RecordListFilter) ([]models.IntegratedRecord, int64, error) {
	return s.recordRepo.List(filter)
}

// UpdateRecordInput 레코드 수동 수정 입력
// nil 필드는 건드리지 않는다.
type UpdateRecordInput struct {
	SalesAmount     *float64 `json:"sales_amount"`
	SalesQuantity   *int     `json:"sales_quantity"`
	OrderCount      *int     `json:"order_count"`
	AdCost          *float64 `json:"ad_cost"`
	ConversionSales *float64 `json:"conversion_sales"`
	CostPrice       *float64 `json:"cost_price"`
	FeeAmount       *float64 `json:"fee_amount"`
	VAT             *float64 `json:"vat"`
}

// Update 레코드 수동 수정
// 입력 필드를 바꾼 뒤 파생 지표를 반드시 재계산하고 저장한다.
func (s *RecordService) Update(tenantID, id uint, input UpdateRecordInput) (*models.IntegratedRecord, error) {
	rec, err := s.recordRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	if input.SalesAmount != nil {
		rec.SalesAmount = *input.SalesAmount
	}
	if input.SalesQuantity != nil {
		rec.SalesQuantity = *input.SalesQuantity
	}
	if input.OrderCount != nil {
		rec.OrderCount = *input.OrderCount
	}
	if input.AdCost != nil {
		rec.AdCost = *input.AdCost
	}
	if input.ConversionSales != nil {
		rec.ConversionSales = *input.ConversionSales
	}
	if input.CostPrice != nil {
		rec.CostPrice = *input.CostPrice
	}
	if input.FeeAmount != nil {
		rec.FeeAmount = *input.FeeAmount
	}
	if input.VAT != nil {
		rec.VAT = *input.VAT
	}

	s.policy.ApplyMetrics(rec)

	if err := s.recordRepo.Update(rec); err != nil {
		return nil, err
	}
	invalidateMetricsCache(tenantID)
	return rec, nil
}

// DeleteByID 레코드 단건 삭제
func (s *RecordService) DeleteByID(tenantID, id uint) error {
	affected, err := s.recordRepo.DeleteByID(tenantID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	invalidateMetricsCache(tenantID)
	return nil
}

// DeleteByIDs 레코드 일괄 삭제
func (s *RecordService) DeleteByIDs(tenantID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	affected, err := s.recordRepo.DeleteByIDs(tenantID, ids)
	if err != nil {
		return 0, err
	}
	invalidateMetricsCache(tenantID)
	return affected, nil
}

// DeleteAll 테넌트 전체 레코드 삭제
func (s *RecordService) DeleteAll(tenantID uint) (int64, error) {
	affected, err := s.recordRepo.DeleteAllByTenant(tenantID)
	if err != nil {
		return 0, err
	}
	invalidateMetricsCache(tenantID)
	return affected, nil
}

// parseDate 일자 문자열 검증
func parseDate(value string) (string, error) {
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(constants.DateLayout), nil
}
