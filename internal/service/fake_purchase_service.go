package service

import (
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"
)

// FakePurchaseService 가구매 서비스
type FakePurchaseService struct {
	fakeRepo repository.FakePurchaseRepository
	policy   settlement.CostPolicy
}

// NewFakePurchaseService 가구매 서비스 생성
func NewFakePurchaseService(fakeRepo repository.FakePurchaseRepository, policy settlement.CostPolicy) *FakePurchaseService {
	return &FakePurchaseService{
		fakeRepo: fakeRepo,
		policy:   policy,
	}
}

// FakePurchaseInput 가구매 생성/수정 입력
type FakePurchaseInput struct {
	OptionID    string  `json:"option_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	ProductName string  `json:"product_name"`
	OptionName  string  `json:"option_name"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price" binding:"required"`
}

// Get 가구매 단건 조회
func (s *FakePurchaseService) Get(tenantID, id uint) (*models.FakePurchase, error) {
	fp, err := s.fakeRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if fp == nil {
		return nil, ErrNotFound
	}
	return fp, nil
}

// List 가구매 목록 조회
func (s *FakePurchaseService) List(filter repository.FakePurchaseListFilter) ([]models.FakePurchase, int64, error) {
	return s.fakeRepo.List(filter)
}

// Create 가구매 생성
// (tenant, option, date) 당 한 건만 허용. 저장 전 비용을 재계산한다.
func (s *FakePurchaseService) Create(tenantID uint, input FakePurchaseInput) (*models.FakePurchase, error) {
	if input.OptionID == "" || input.Quantity <= 0 || input.UnitPrice < 0 {
		return nil, ErrInvalidInput
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	existing, err := s.fakeRepo.GetByKey(tenantID, input.OptionID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateKey
	}

	fp := &models.FakePurchase{
		TenantID:    tenantID,
		OptionID:    input.OptionID,
		Date:        date,
		ProductName: input.ProductName,
		OptionName:  input.OptionName,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
	}
	s.policy.ApplyFakePurchaseCost(fp)

	if err := s.fakeRepo.Create(fp); err != nil {
		return nil, err
	}
	invalidateMetricsCache(tenantID)
	return fp, nil
}

// Update 가구매 수정
func (s *FakePurchaseService) Update(tenantID, id uint, input FakePurchaseInput) (*models.FakePurchase, error) {
	fp, err := s.fakeRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if fp == nil {
		return nil, ErrNotFound
	}
	if input.Quantity <= 0 || input.UnitPrice < 0 {
		return nil, ErrInvalidInput
	}

	date := fp.Date
	if input.Date != "" {
		date, err = parseDate(input.Date)
		if err != nil {
			return nil, err
		}
	}
	optionID := fp.OptionID
	if input.OptionID != "" {
		optionID = input.OptionID
	}

	// 키가 바뀌는 경우 유일성 재확인
	if optionID != fp.OptionID || date != fp.Date {
		existing, err := s.fakeRepo.GetByKey(tenantID, optionID, date)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != fp.ID {
			return nil, ErrDuplicateKey
		}
	}

	fp.OptionID = optionID
	fp.Date = date
	fp.ProductName = input.ProductName
	fp.OptionName = input.OptionName
	fp.Quantity = input.Quantity
	fp.UnitPrice = input.UnitPrice
	s.policy.ApplyFakePurchaseCost(fp)

	if err := s.fakeRepo.Update(fp); err != nil {
		return nil, err
	}
	invalidateMetricsCache(tenantID)
	return fp, nil
}

// Delete 가구매 삭제
func (s *FakePurchaseService) Delete(tenantID, id uint) error {
	affected, err := s.fakeRepo.Delete(tenantID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	invalidateMetricsCache(tenantID)
	return nil
}
