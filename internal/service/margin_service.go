package service

import (
	"io"

	"github.com/sellstat-next/internal/logger"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/parser"
	"github.com/sellstat-next/internal/repository"
	"github.com/sellstat-next/internal/settlement"

	"gorm.io/gorm"
)

// MarginService 마진 마스터 서비스
type MarginService struct {
	marginRepo repository.ProductMarginRepository
	recordRepo repository.IntegratedRecordRepository
	policy     settlement.CostPolicy
}

// NewMarginService 마진 마스터 서비스 생성
func NewMarginService(marginRepo repository.ProductMarginRepository, recordRepo repository.IntegratedRecordRepository, policy settlement.CostPolicy) *MarginService {
	return &MarginService{
		marginRepo: marginRepo,
		recordRepo: recordRepo,
		policy:     policy,
	}
}

// MarginInput 마진 생성/수정 입력
type MarginInput struct {
	OptionID     string  `json:"option_id" binding:"required"`
	ProductName  string  `json:"product_name"`
	OptionName   string  `json:"option_name"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	MarginAmount float64 `json:"margin_amount"`
	MarginRate   float64 `json:"margin_rate"`
	FeeRate      float64 `json:"fee_rate"`
	FeeAmount    float64 `json:"fee_amount"`
	VAT          float64 `json:"vat"`
	Note         string  `json:"note"`
}

func (in MarginInput) apply(m *models.ProductMargin) {
	m.OptionID = in.OptionID
	m.ProductName = in.ProductName
	m.OptionName = in.OptionName
	m.CostPrice = in.CostPrice
	m.SellingPrice = in.SellingPrice
	m.MarginAmount = in.MarginAmount
	m.MarginRate = in.MarginRate
	m.FeeRate = in.FeeRate
	m.FeeAmount = in.FeeAmount
	m.VAT = in.VAT
	m.Note = in.Note
}

// Get 마진 단건 조회
func (s *MarginService) Get(tenantID, id uint) (*models.ProductMargin, error) {
	margin, err := s.marginRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if margin == nil {
		return nil, ErrNotFound
	}
	return margin, nil
}

// List 마진 목록 조회
func (s *MarginService) List(filter repository.MarginListFilter) ([]models.ProductMargin, int64, error) {
	return s.marginRepo.List(filter)
}

// Create 마진 생성
// (tenant, option_id) 는 유일해야 한다.
func (s *MarginService) Create(tenantID uint, input MarginInput) (*models.ProductMargin, error) {
	if input.OptionID == "" {
		return nil, ErrInvalidInput
	}
	existing, err := s.marginRepo.GetByOption(tenantID, input.OptionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateKey
	}

	margin := &models.ProductMargin{TenantID: tenantID}
	input.apply(margin)
	if err := s.marginRepo.Create(margin); err != nil {
		return nil, err
	}
	return margin, nil
}

// Update 마진 수정
func (s *MarginService) Update(tenantID, id uint, input MarginInput) (*models.ProductMargin, error) {
	margin, err := s.marginRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if margin == nil {
		return nil, ErrNotFound
	}

	// 옵션ID 를 바꾸는 경우 유일성 재확인
	if input.OptionID != "" && input.OptionID != margin.OptionID {
		existing, err := s.marginRepo.GetByOption(tenantID, input.OptionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateKey
		}
	}

	input.apply(margin)
	if err := s.marginRepo.Update(margin); err != nil {
		return nil, err
	}
	return margin, nil
}

// Delete 마진 삭제
func (s *MarginService) Delete(tenantID, id uint) error {
	affected, err := s.marginRepo.Delete(tenantID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// BatchUpsert 마진 일괄 반영
// 옵션ID 기준으로 있으면 갱신, 없으면 생성. 전체가 한 트랜잭션이다.
func (s *MarginService) BatchUpsert(tenantID uint, inputs []MarginInput) (created, updated int, err error) {
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.marginRepo.WithTx(tx)
		for _, input := range inputs {
			if input.OptionID == "" {
				continue
			}
			existing, err := repo.GetByOption(tenantID, input.OptionID)
			if err != nil {
				return err
			}
			if existing != nil {
				input.apply(existing)
				if err := repo.Update(existing); err != nil {
					return err
				}
				updated++
				continue
			}
			margin := &models.ProductMargin{TenantID: tenantID}
			input.apply(margin)
			if err := repo.Create(margin); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

// ImportFile 마진 스프레드시트 업로드 반영
func (s *MarginService) ImportFile(tenantID uint, filename string, r io.Reader) (created, updated int, err error) {
	rows, err := parser.ReadTable(filename, r)
	if err != nil {
		return 0, 0, err
	}
	parsed, err := parser.ParseMargins(rows)
	if err != nil {
		return 0, 0, err
	}

	inputs := make([]MarginInput, 0, len(parsed))
	for _, row := range parsed {
		inputs = append(inputs, MarginInput{
			OptionID:     row.OptionID,
			ProductName:  row.ProductName,
			OptionName:   row.OptionName,
			CostPrice:    row.CostPrice,
			SellingPrice: row.SellingPrice,
			MarginAmount: row.MarginAmount,
			MarginRate:   row.MarginRate,
			FeeRate:      row.FeeRate,
			FeeAmount:    row.FeeAmount,
			VAT:          row.VAT,
			Note:         row.Note,
		})
	}
	return s.BatchUpsert(tenantID, inputs)
}

// Recalculate 테넌트 레코드 전체에 현재 마진 마스터 재적용
// 마진 필드를 덮어쓰고 파생 지표를 다시 계산한다. 전체가 한
// 트랜잭션이며 중간 실패 시 아무것도 반영하지 않는다.
func (s *MarginService) Recalculate(tenantID uint) (int, error) {
	margins, err := s.marginRepo.MapByTenant(tenantID)
	if err != nil {
		return 0, err
	}

	var updated int
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.recordRepo.WithTx(tx)
		records, err := repo.ListAllByTenant(tenantID)
		if err != nil {
			return err
		}
		for i := range records {
			rec := &records[i]
			margin, ok := margins[rec.OptionID]
			if ok {
				rec.CostPrice = margin.CostPrice
				rec.SellingPrice = margin.SellingPrice
				rec.MarginAmount = margin.MarginAmount
				rec.MarginRate = margin.MarginRate
				rec.FeeRate = margin.FeeRate
				rec.FeeAmount = margin.FeeAmount
				rec.VAT = margin.VAT
			}
			s.policy.ApplyMetrics(rec)
			if err := repo.Update(rec); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	invalidateMetricsCache(tenantID)
	logger.Infow("margin_recalculate_done", "tenant_id", tenantID, "updated", updated)
	return updated, nil
}
