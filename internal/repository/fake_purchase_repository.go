package repository

import (
	"errors"

	"github.com/sellstat-next/internal/models"

	"gorm.io/gorm"
)

// FakePurchaseRepository 가구매 데이터 접근 인터페이스
type FakePurchaseRepository interface {
	GetByID(tenantID, id uint) (*models.FakePurchase, error)
	GetByKey(tenantID uint, optionID, date string) (*models.FakePurchase, error)
	Create(fp *models.FakePurchase) error
	Update(fp *models.FakePurchase) error
	Delete(tenantID, id uint) (int64, error)
	List(filter FakePurchaseListFilter) ([]models.FakePurchase, int64, error)
	ListRange(filter FakePurchaseListFilter) ([]models.FakePurchase, error)
	WithTx(tx *gorm.DB) *GormFakePurchaseRepository
}

// GormFakePurchaseRepository GORM 구현
type GormFakePurchaseRepository struct {
	db *gorm.DB
}

// NewFakePurchaseRepository 가구매 저장소 생성
func NewFakePurchaseRepository(db *gorm.DB) *GormFakePurchaseRepository {
	return &GormFakePurchaseRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormFakePurchaseRepository) WithTx(tx *gorm.DB) *GormFakePurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormFakePurchaseRepository{db: tx}
}

// GetByID ID 로 가구매 조회
func (r *GormFakePurchaseRepository) GetByID(tenantID, id uint) (*models.FakePurchase, error) {
	var fp models.FakePurchase
	err := r.db.Where("tenant_id = ?", tenantID).First(&fp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fp, nil
}

// GetByKey (옵션, 일자) 키로 가구매 조회
func (r *GormFakePurchaseRepository) GetByKey(tenantID uint, optionID, date string) (*models.FakePurchase, error) {
	var fp models.FakePurchase
	err := r.db.
		Where("tenant_id = ? AND option_id = ? AND date = ?", tenantID, optionID, date).
		First(&fp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fp, nil
}

// Create 가구매 생성
func (r *GormFakePurchaseRepository) Create(fp *models.FakePurchase) error {
	return r.db.Create(fp).Error
}

// Update 가구매 저장
func (r *GormFakePurchaseRepository) Update(fp *models.FakePurchase) error {
	return r.db.Save(fp).Error
}

// Delete 가구매 삭제
func (r *GormFakePurchaseRepository) Delete(tenantID, id uint) (int64, error) {
	result := r.db.Where("tenant_id = ?", tenantID).Delete(&models.FakePurchase{}, id)
	return result.RowsAffected, result.Error
}

func applyFakePurchaseFilter(query *gorm.DB, filter FakePurchaseListFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", filter.TenantID)
	if filter.OptionID != "" {
		query = query.Where("option_id = ?", filter.OptionID)
	}
	if filter.Product != "" {
		query = query.Where("product_name LIKE ?", "%"+filter.Product+"%")
	}
	if filter.DateFrom != "" {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date <= ?", filter.DateTo)
	}
	return query
}

// List 가구매 목록 조회 (페이지네이션)
func (r *GormFakePurchaseRepository) List(filter FakePurchaseListFilter) ([]models.FakePurchase, int64, error) {
	var fakes []models.FakePurchase
	query := applyFakePurchaseFilter(r.db.Model(&models.FakePurchase{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("date desc, option_id asc").Find(&fakes).Error; err != nil {
		return nil, 0, err
	}
	return fakes, total, nil
}

// ListRange 보정 계산용 구간 조회 (페이지 없음)
func (r *GormFakePurchaseRepository) ListRange(filter FakePurchaseListFilter) ([]models.FakePurchase, error) {
	var fakes []models.FakePurchase
	query := applyFakePurchaseFilter(r.db.Model(&models.FakePurchase{}), filter)

	if err := query.Order("date asc, option_id asc").Find(&fakes).Error; err != nil {
		return nil, err
	}
	return fakes, nil
}
