package parser

import "sort"

// MarginRow 마진 마스터 파일 한 행
type MarginRow struct {
	OptionID     string
	ProductName  string
	OptionName   string
	CostPrice    float64
	SellingPrice float64
	MarginAmount float64
	MarginRate   float64
	FeeRate      float64
	FeeAmount    float64
	VAT          float64
	Note         string
}

// 마진 파일 canonical 필드 → 헤더 별칭 (정규화 기준)
var marginAliases = map[string][]string{
	"option_id":     {"옵션id", "optionid"},
	"product_name":  {"상품명"},
	"option_name":   {"옵션명"},
	"cost_price":    {"원가", "매입가"},
	"selling_price": {"판매가"},
	"margin_amount": {"마진", "마진금액"},
	"margin_rate":   {"마진율"},
	"fee_rate":      {"수수료율"},
	"fee_amount":    {"수수료", "수수료금액"},
	"vat":           {"부가세"},
	"note":          {"비고", "메모"},
}

var marginRequired = []string{"option_id", "cost_price"}

// ParseMargins 마진 마스터 파일 파싱
// 옵션ID 와 원가는 필수, 나머지 컬럼은 없으면 0 으로 둔다.
func ParseMargins(rows [][]string) ([]MarginRow, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: marginRequired}
	}

	cols := mapHeaders(rows[0], marginAliases)
	var missing []string
	for _, field := range marginRequired {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Columns: missing}
	}

	var out []MarginRow
	for _, row := range rows[1:] {
		get := fieldGetter(row, cols)

		optionID := get("option_id")
		if optionID == "" {
			continue
		}
		out = append(out, MarginRow{
			OptionID:     optionID,
			ProductName:  get("product_name"),
			OptionName:   get("option_name"),
			CostPrice:    ParseNumber(get("cost_price")),
			SellingPrice: ParseNumber(get("selling_price")),
			MarginAmount: ParseNumber(get("margin_amount")),
			MarginRate:   ParseNumber(get("margin_rate")),
			FeeRate:      ParseNumber(get("fee_rate")),
			FeeAmount:    ParseNumber(get("fee_amount")),
			VAT:          ParseNumber(get("vat")),
			Note:         get("note"),
		})
	}
	return out, nil
}
