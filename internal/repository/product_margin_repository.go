package repository

import (
	"errors"

	"github.com/sellstat-next/internal/models"

	"gorm.io/gorm"
)

// ProductMarginRepository 마진 마스터 데이터 접근 인터페이스
type ProductMarginRepository interface {
	GetByID(tenantID, id uint) (*models.ProductMargin, error)
	GetByOption(tenantID uint, optionID string) (*models.ProductMargin, error)
	MapByTenant(tenantID uint) (map[string]models.ProductMargin, error)
	Create(margin *models.ProductMargin) error
	Update(margin *models.ProductMargin) error
	Delete(tenantID, id uint) (int64, error)
	List(filter MarginListFilter) ([]models.ProductMargin, int64, error)
	WithTx(tx *gorm.DB) *GormProductMarginRepository
}

// GormProductMarginRepository GORM 구현
type GormProductMarginRepository struct {
	db *gorm.DB
}

// NewProductMarginRepository 마진 마스터 저장소 생성
func NewProductMarginRepository(db *gorm.DB) *GormProductMarginRepository {
	return &GormProductMarginRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormProductMarginRepository) WithTx(tx *gorm.DB) *GormProductMarginRepository {
	if tx == nil {
		return r
	}
	return &GormProductMarginRepository{db: tx}
}

// GetByID ID 로 마진 조회
func (r *GormProductMarginRepository) GetByID(tenantID, id uint) (*models.ProductMargin, error) {
	var margin models.ProductMargin
	err := r.db.Where("tenant_id = ?", tenantID).First(&margin, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &margin, nil
}

// GetByOption 옵션ID 로 마진 조회
func (r *GormProductMarginRepository) GetByOption(tenantID uint, optionID string) (*models.ProductMargin, error) {
	var margin models.ProductMargin
	err := r.db.Where("tenant_id = ? AND option_id = ?", tenantID, optionID).First(&margin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &margin, nil
}

// MapByTenant 테넌트 전체 마진을 옵션ID 키 맵으로 조회 (조인용)
func (r *GormProductMarginRepository) MapByTenant(tenantID uint) (map[string]models.ProductMargin, error) {
	var margins []models.ProductMargin
	if err := r.db.Where("tenant_id = ?", tenantID).Find(&margins).Error; err != nil {
		return nil, err
	}
	mapped := make(map[string]models.ProductMargin, len(margins))
	for _, m := range margins {
		mapped[m.OptionID] = m
	}
	return mapped, nil
}

// Create 마진 생성
func (r *GormProductMarginRepository) Create(margin *models.ProductMargin) error {
	return r.db.Create(margin).Error
}

// Update 마진 저장
func (r *GormProductMarginRepository) Update(margin *models.ProductMargin) error {
	return r.db.Save(margin).Error
}

// Delete 마진 삭제 (soft delete)
func (r *GormProductMarginRepository) Delete(tenantID, id uint) (int64, error) {
	result := r.db.Where("tenant_id = ?", tenantID).Delete(&models.ProductMargin{}, id)
	return result.RowsAffected, result.Error
}

// List 마진 목록 조회
func (r *GormProductMarginRepository) List(filter MarginListFilter) ([]models.ProductMargin, int64, error) {
	var margins []models.ProductMargin
	query := r.db.Model(&models.ProductMargin{}).Where("tenant_id = ?", filter.TenantID)

	if filter.OptionID != "" {
		query = query.Where("option_id = ?", filter.OptionID)
	}
	if filter.Search != "" {
		query = query.Where("(product_name LIKE ? OR option_name LIKE ?)", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&margins).Error; err != nil {
		return nil, 0, err
	}
	return margins, total, nil
}
