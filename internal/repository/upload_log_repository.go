package repository

import (
	"github.com/sellstat-next/internal/models"

	"gorm.io/gorm"
)

// UploadLogRepository 업로드 이력 데이터 접근 인터페이스
type UploadLogRepository interface {
	Create(log *models.UploadLog) error
	List(filter UploadLogListFilter) ([]models.UploadLog, int64, error)
	WithTx(tx *gorm.DB) *GormUploadLogRepository
}

// GormUploadLogRepository GORM 구현
type GormUploadLogRepository struct {
	db *gorm.DB
}

// NewUploadLogRepository 업로드 이력 저장소 생성
func NewUploadLogRepository(db *gorm.DB) *GormUploadLogRepository {
	return &GormUploadLogRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormUploadLogRepository) WithTx(tx *gorm.DB) *GormUploadLogRepository {
	if tx == nil {
		return r
	}
	return &GormUploadLogRepository{db: tx}
}

// Create 업로드 이력 생성
func (r *GormUploadLogRepository) Create(log *models.UploadLog) error {
	return r.db.Create(log).Error
}

// List 업로드 이력 조회
func (r *GormUploadLogRepository) List(filter UploadLogListFilter) ([]models.UploadLog, int64, error) {
	var logs []models.UploadLog
	query := r.db.Model(&models.UploadLog{}).Where("tenant_id = ?", filter.TenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
