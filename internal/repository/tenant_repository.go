package repository

import (
	"errors"

	"github.com/sellstat-next/internal/models"

	"gorm.io/gorm"
)

// TenantRepository 테넌트 데이터 접근 인터페이스
type TenantRepository interface {
	GetByID(id uint) (*models.Tenant, error)
	GetByEmail(email string) (*models.Tenant, error)
	Create(tenant *models.Tenant) error
	Update(tenant *models.Tenant) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	List(filter TenantListFilter) ([]models.Tenant, int64, error)
	WithTx(tx *gorm.DB) *GormTenantRepository
}

// GormTenantRepository GORM 구현
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository 테넌트 저장소 생성
func NewTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormTenantRepository) WithTx(tx *gorm.DB) *GormTenantRepository {
	if tx == nil {
		return r
	}
	return &GormTenantRepository{db: tx}
}

// GetByID ID 로 테넌트 조회
func (r *GormTenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByEmail 이메일로 테넌트 조회
func (r *GormTenantRepository) GetByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("email = ?", email).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// Create 테넌트 생성
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// Update 테넌트 저장
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// UpdateFields 지정 필드만 갱신
func (r *GormTenantRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Tenant{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 테넌트 삭제 (soft delete)
func (r *GormTenantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tenant{}, id).Error
}

// List 테넌트 목록 조회
func (r *GormTenantRepository) List(filter TenantListFilter) ([]models.Tenant, int64, error) {
	var tenants []models.Tenant
	query := r.db.Model(&models.Tenant{})

	if filter.Search != "" {
		query = query.Where("email LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}
