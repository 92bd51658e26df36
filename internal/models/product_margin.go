package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductMargin 옵션별 원가/수수료 마스터 테이블
// 날짜와 무관한 "현재" 단가로, 교체되기 전까지 해당 옵션의 모든
// 일자 레코드에 적용된다. (tenant_id, option_id) 조합으로 유일하다.
type ProductMargin struct {
	ID       uint   `gorm:"primarykey" json:"id"`                                                  // 기본키
	TenantID uint   `gorm:"uniqueIndex:idx_margins_tenant_option;index;not null" json:"tenant_id"` // 테넌트 ID
	OptionID string `gorm:"uniqueIndex:idx_margins_tenant_option;not null" json:"option_id"`       // 옵션 ID

	ProductName string `json:"product_name"` // 상품명
	OptionName  string `json:"option_name"`  // 옵션명

	CostPrice    float64 `json:"cost_price"`    // 원가
	SellingPrice float64 `json:"selling_price"` // 판매가
	MarginAmount float64 `json:"margin_amount"` // 개당 마진
	MarginRate   float64 `json:"margin_rate"`   // 마진율
	FeeRate      float64 `json:"fee_rate"`      // 수수료율
	FeeAmount    float64 `json:"fee_amount"`    // 개당 수수료
	VAT          float64 `json:"vat"`           // 개당 부가세
	Note         string  `gorm:"type:text" json:"note"` // 메모

	CreatedAt time.Time      `json:"created_at"` // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"` // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 소프트 삭제 시각
}

// TableName 테이블명 지정
func (ProductMargin) TableName() string {
	return "product_margins"
}
