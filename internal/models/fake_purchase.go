package models

import (
	"time"
)

// FakePurchase 가구매(자전 주문) 기록 테이블
// 플랫폼 요건을 맞추기 위해 의도적으로 넣은 허위 주문 한 건을
// (tenant_id, option_id, date) 단위로 기록한다. 리포트 시점에 해당
// 레코드의 매출/수량에서 차감되며, 저장 자체에는 영향을 주지 않는다.
type FakePurchase struct {
	ID       uint   `gorm:"primarykey" json:"id"`                                                 // 기본키
	TenantID uint   `gorm:"uniqueIndex:idx_fakes_tenant_option_date;index;not null" json:"tenant_id"` // 테넌트 ID
	OptionID string `gorm:"uniqueIndex:idx_fakes_tenant_option_date;not null" json:"option_id"`       // 옵션 ID
	Date     string `gorm:"uniqueIndex:idx_fakes_tenant_option_date;type:varchar(10);not null" json:"date"` // 일자 (YYYY-MM-DD)

	ProductName string `gorm:"index" json:"product_name"` // 상품명
	OptionName  string `json:"option_name"`               // 옵션명

	Quantity  int     `gorm:"not null" json:"quantity"`   // 가구매 수량
	UnitPrice float64 `gorm:"not null" json:"unit_price"` // 개당 결제 금액

	// 파생: 가구매 집행 비용. 저장 전 반드시 재계산한다.
	CalculatedCost float64 `json:"calculated_cost"` // 개당 집행 비용
	TotalCost      float64 `json:"total_cost"`      // 총 집행 비용

	CreatedAt time.Time `json:"created_at"` // 생성 시각
	UpdatedAt time.Time `json:"updated_at"` // 수정 시각
}

// TableName 테이블명 지정
func (FakePurchase) TableName() string {
	return "fake_purchases"
}
