package repository

// RecordListFilter 통합 레코드 목록 조회 조건
// 상품명은 부분 일치, 옵션ID 는 정확 일치.
type RecordListFilter struct {
	Page     int
	PageSize int
	TenantID uint
	OptionID string
	Product  string
	DateFrom string
	DateTo   string
}

// RecordRangeFilter 집계/내보내기용 구간 조회 조건 (페이지 없음)
type RecordRangeFilter struct {
	TenantID uint
	OptionID string
	Product  string
	DateFrom string
	DateTo   string
}

// MarginListFilter 마진 마스터 목록 조회 조건
type MarginListFilter struct {
	Page     int
	PageSize int
	TenantID uint
	OptionID string
	Search   string
}

// FakePurchaseListFilter 가구매 목록 조회 조건
type FakePurchaseListFilter struct {
	Page     int
	PageSize int
	TenantID uint
	OptionID string
	Product  string
	DateFrom string
	DateTo   string
}

// UploadLogListFilter 업로드 이력 조회 조건
type UploadLogListFilter struct {
	Page     int
	PageSize int
	TenantID uint
}

// TenantListFilter 테넌트 목록 조회 조건
type TenantListFilter struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Status   string
}
