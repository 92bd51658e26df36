package models

import (
	"time"
)

// IntegratedRecord 옵션×일자 단위 통합 손익 레코드
// (tenant_id, option_id, date) 조합으로 유일하며, 파생 필드는 항상
// 입력 필드에 정산 공식을 적용한 결과와 일치해야 한다. 입력 필드를
// 바꾸는 쪽이 저장 전에 재계산할 책임을 진다.
type IntegratedRecord struct {
	ID       uint   `gorm:"primarykey" json:"id"`                                                      // 기본키
	TenantID uint   `gorm:"uniqueIndex:idx_records_tenant_option_date;index;not null" json:"tenant_id"` // 테넌트 ID
	OptionID string `gorm:"uniqueIndex:idx_records_tenant_option_date;not null" json:"option_id"`       // 옵션 ID
	Date     string `gorm:"uniqueIndex:idx_records_tenant_option_date;type:varchar(10);not null" json:"date"` // 일자 (YYYY-MM-DD)

	OptionName  string `json:"option_name"`  // 옵션명
	ProductName string `gorm:"index" json:"product_name"` // 상품명

	// 판매
	SalesAmount        float64 `json:"sales_amount"`         // 순판매금액
	SalesQuantity      int     `json:"sales_quantity"`       // 순판매수량
	OrderCount         int     `json:"order_count"`          // 주문수
	TotalSales         float64 `json:"total_sales"`          // 총거래금액
	TotalSalesQuantity int     `json:"total_sales_quantity"` // 총거래수량

	// 광고
	AdCost          float64 `json:"ad_cost"`           // 광고비
	Impressions     int     `json:"impressions"`       // 노출수
	Clicks          int     `json:"clicks"`            // 클릭수
	AdSalesQuantity int     `json:"ad_sales_quantity"` // 광고 판매수량
	ConversionSales float64 `json:"conversion_sales"`  // 광고 전환매출

	// 마진 마스터 (개당)
	CostPrice    float64 `json:"cost_price"`    // 원가
	SellingPrice float64 `json:"selling_price"` // 판매가
	MarginAmount float64 `json:"margin_amount"` // 개당 마진
	MarginRate   float64 `json:"margin_rate"`   // 마진율
	FeeRate      float64 `json:"fee_rate"`      // 수수료율
	FeeAmount    float64 `json:"fee_amount"`    // 개당 수수료
	VAT          float64 `json:"vat"`           // 개당 부가세

	// 파생 (정산 공식 결과)
	TotalCost        float64 `json:"total_cost"`         // 총원가
	NetProfit        float64 `json:"net_profit"`         // 순이익
	ActualMarginRate float64 `json:"actual_margin_rate"` // 실마진율
	CostRate         float64 `json:"cost_rate"`          // 원가율
	AdCostRate       float64 `json:"ad_cost_rate"`       // 광고비율
	ROAS             float64 `json:"roas"`               // 광고수익률

	CreatedAt time.Time `json:"created_at"` // 생성 시각
	UpdatedAt time.Time `json:"updated_at"` // 수정 시각
}

// TableName 테이블명 지정
func (IntegratedRecord) TableName() string {
	return "integrated_records"
}
