package constants

// 테넌트(셀러 계정) 역할
const (
	TenantRoleSeller = "seller"
	TenantRoleAdmin  = "admin"
)

// 테넌트 상태
const (
	TenantStatusActive   = "active"
	TenantStatusDisabled = "disabled"
)

// 날짜 표기 포맷 (레코드 키로 쓰이는 일 단위 날짜)
const DateLayout = "2006-01-02"

// 업로드 요약에 쓰이는 경고 유형
const (
	WarnAdsColumnsMissing  = "ads_columns_missing"
	WarnRowSkipped         = "row_skipped"
	WarnDuplicateRecordKey = "duplicate_record_key"
	WarnFakeWithoutRecord  = "fake_purchase_without_record"
	WarnNegativeQuantity   = "negative_adjusted_quantity"
)
