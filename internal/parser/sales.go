package parser

import "sort"

// SalesRow 판매 파일 한 행
type SalesRow struct {
	OptionID           string
	OptionName         string
	ProductName        string
	SalesAmount        float64
	SalesQuantity      int
	OrderCount         int
	TotalSales         float64
	TotalSalesQuantity int
}

// 판매 파일 canonical 필드 → 헤더 별칭 (정규화 기준)
var salesAliases = map[string][]string{
	"option_id":            {"옵션id", "optionid", "vendoritemid"},
	"option_name":          {"옵션명", "노출상품명(옵션명)"},
	"product_name":         {"상품명", "등록상품명"},
	"sales_amount":         {"순판매금액", "순판매금액(원)"},
	"sales_quantity":       {"순판매상품수", "순판매수량"},
	"order_count":          {"주문수", "주문건수"},
	"total_sales":          {"총거래금액", "총거래금액(원)"},
	"total_sales_quantity": {"총거래상품수", "총거래수량"},
}

// 누락 시 업로드 자체를 실패시키는 컬럼
var salesRequired = []string{
	"option_id",
	"option_name",
	"product_name",
	"sales_amount",
	"sales_quantity",
	"order_count",
	"total_sales",
	"total_sales_quantity",
}

// ParseSales 판매 파일 파싱
// 필수 컬럼이 하나라도 없으면 MissingColumnsError 로 실패한다.
func ParseSales(rows [][]string) ([]SalesRow, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: salesRequired}
	}

	cols := mapHeaders(rows[0], salesAliases)
	var missing []string
	for _, field := range salesRequired {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Columns: missing}
	}

	var out []SalesRow
	for _, row := range rows[1:] {
		get := fieldGetter(row, cols)

		optionID := get("option_id")
		if optionID == "" {
			continue
		}
		out = append(out, SalesRow{
			OptionID:           optionID,
			OptionName:         get("option_name"),
			ProductName:        get("product_name"),
			SalesAmount:        ParseNumber(get("sales_amount")),
			SalesQuantity:      ParseCount(get("sales_quantity")),
			OrderCount:         ParseCount(get("order_count")),
			TotalSales:         ParseNumber(get("total_sales")),
			TotalSalesQuantity: ParseCount(get("total_sales_quantity")),
		})
	}
	return out, nil
}
