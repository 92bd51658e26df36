package repository

import (
	"errors"

	"github.com/sellstat-next/internal/models"

	"gorm.io/gorm"
)

// IntegratedRecordRepository 통합 레코드 데이터 접근 인터페이스
// 모든 조회/변경은 tenant_id 로 스코프된다. 이것이 유일한 테넌트
// 격리 수단이므로 새 메서드를 추가할 때도 예외를 두지 않는다.
type IntegratedRecordRepository interface {
	GetByID(tenantID, id uint) (*models.IntegratedRecord, error)
	GetByKey(tenantID uint, optionID, date string) (*models.IntegratedRecord, error)
	Create(record *models.IntegratedRecord) error
	Update(record *models.IntegratedRecord) error
	List(filter RecordListFilter) ([]models.IntegratedRecord, int64, error)
	ListRange(filter RecordRangeFilter) ([]models.IntegratedRecord, error)
	ListAllByTenant(tenantID uint) ([]models.IntegratedRecord, error)
	DeleteByID(tenantID, id uint) (int64, error)
	DeleteByIDs(tenantID uint, ids []uint) (int64, error)
	DeleteAllByTenant(tenantID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormIntegratedRecordRepository
}

// GormIntegratedRecordRepository GORM 구현
type GormIntegratedRecordRepository struct {
	db *gorm.DB
}

// NewIntegratedRecordRepository 통합 레코드 저장소 생성
func NewIntegratedRecordRepository(db *gorm.DB) *GormIntegratedRecordRepository {
	return &GormIntegratedRecordRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormIntegratedRecordRepository) WithTx(tx *gorm.DB) *GormIntegratedRecordRepository {
	if tx == nil {
		return r
	}
	return &GormIntegratedRecordRepository{db: tx}
}

// GetByID ID 로 레코드 조회
func (r *GormIntegratedRecordRepository) GetByID(tenantID, id uint) (*models.IntegratedRecord, error) {
	var record models.IntegratedRecord
	err := r.db.Where("tenant_id = ?", tenantID).First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByKey (옵션, 일자) 키로 레코드 조회
func (r *GormIntegratedRecordRepository) GetByKey(tenantID uint, optionID, date string) (*models.IntegratedRecord, error) {
	var record models.IntegratedRecord
	err := r.db.
		Where("tenant_id = ? AND option_id = ? AND date = ?", tenantID, optionID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Create 레코드 생성
func (r *GormIntegratedRecordRepository) Create(record *models.IntegratedRecord) error {
	return r.db.Create(record).Error
}

// Update 레코드 저장
func (r *GormIntegratedRecordRepository) Update(record *models.IntegratedRecord) error {
	return r.db.Save(record).Error
}

func applyRecordRange(query *gorm.DB, optionID, product, dateFrom, dateTo string) *gorm.DB {
	if optionID != "" {
		query = query.Where("option_id = ?", optionID)
	}
	if product != "" {
		query = query.Where("product_name LIKE ?", "%"+product+"%")
	}
	if dateFrom != "" {
		query = query.Where("date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("date <= ?", dateTo)
	}
	return query
}

// List 레코드 목록 조회 (페이지네이션)
func (r *GormIntegratedRecordRepository) List(filter RecordListFilter) ([]models.IntegratedRecord, int64, error) {
	var records []models.IntegratedRecord
	query := r.db.Model(&models.IntegratedRecord{}).Where("tenant_id = ?", filter.TenantID)
	query = applyRecordRange(query, filter.OptionID, filter.Product, filter.DateFrom, filter.DateTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("date desc, option_id asc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListRange 집계/내보내기용 구간 조회 (페이지 없음)
func (r *GormIntegratedRecordRepository) ListRange(filter RecordRangeFilter) ([]models.IntegratedRecord, error) {
	var records []models.IntegratedRecord
	query := r.db.Where("tenant_id = ?", filter.TenantID)
	query = applyRecordRange(query, filter.OptionID, filter.Product, filter.DateFrom, filter.DateTo)

	if err := query.Order("date asc, option_id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListAllByTenant 테넌트의 전체 레코드 조회 (재계산용)
func (r *GormIntegratedRecordRepository) ListAllByTenant(tenantID uint) ([]models.IntegratedRecord, error) {
	var records []models.IntegratedRecord
	if err := r.db.Where("tenant_id = ?", tenantID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByID 레코드 단건 삭제
func (r *GormIntegratedRecordRepository) DeleteByID(tenantID, id uint) (int64, error) {
	result := r.db.Where("tenant_id = ?", tenantID).Delete(&models.IntegratedRecord{}, id)
	return result.RowsAffected, result.Error
}

// DeleteByIDs 레코드 일괄 삭제
func (r *GormIntegratedRecordRepository) DeleteByIDs(tenantID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("tenant_id = ? AND id IN ?", tenantID, ids).Delete(&models.IntegratedRecord{})
	return result.RowsAffected, result.Error
}

// DeleteAllByTenant 테넌트 전체 레코드 삭제
func (r *GormIntegratedRecordRepository) DeleteAllByTenant(tenantID uint) (int64, error) {
	result := r.db.Where("tenant_id = ?", tenantID).Delete(&models.IntegratedRecord{})
	return result.RowsAffected, result.Error
}
