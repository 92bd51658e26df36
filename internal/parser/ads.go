package parser

// AdRow 광고 파일 한 행 (옵션 단위 합산 전)
type AdRow struct {
	OptionID        string
	AdCost          float64
	Impressions     int
	Clicks          int
	AdSalesQuantity int
	ConversionSales float64
}

// 광고 파일 canonical 필드 → 헤더 별칭 (정규화 기준)
var adsAliases = map[string][]string{
	"option_id":         {"옵션id", "광고집행옵션id", "optionid"},
	"ad_cost":           {"광고비", "광고비(원)", "총비용"},
	"impressions":       {"노출수"},
	"clicks":            {"클릭수"},
	"ad_sales_quantity": {"총판매수량(14일)", "총판매수량", "판매수량"},
	"conversion_sales":  {"총전환매출액(14일)", "총전환매출액", "전환매출액"},
}

// ParseAds 광고 파일 파싱
// 판매 파일과 달리 컬럼 누락은 치명적이지 않다. 옵션ID 나 광고비
// 컬럼이 없으면 빈 목록과 ok=false 를 돌려주고 호출 측이 경고를
// 남긴다. 같은 옵션의 여러 캠페인 행은 합산하지 않고 그대로 둔다.
func ParseAds(rows [][]string) (parsed []AdRow, ok bool) {
	if len(rows) == 0 {
		return nil, false
	}

	cols := mapHeaders(rows[0], adsAliases)
	if _, found := cols["option_id"]; !found {
		return nil, false
	}
	if _, found := cols["ad_cost"]; !found {
		return nil, false
	}

	for _, row := range rows[1:] {
		get := fieldGetter(row, cols)

		optionID := get("option_id")
		if optionID == "" {
			continue
		}
		parsed = append(parsed, AdRow{
			OptionID:        optionID,
			AdCost:          ParseNumber(get("ad_cost")),
			Impressions:     ParseCount(get("impressions")),
			Clicks:          ParseCount(get("clicks")),
			AdSalesQuantity: ParseCount(get("ad_sales_quantity")),
			ConversionSales: ParseNumber(get("conversion_sales")),
		})
	}
	return parsed, true
}

// GroupAdsByOption 옵션별 광고 수치 합산
// 한 옵션에 캠페인이 여러 개면 조인 전에 전부 합친다.
func GroupAdsByOption(rows []AdRow) map[string]AdRow {
	grouped := make(map[string]AdRow, len(rows))
	for _, row := range rows {
		acc := grouped[row.OptionID]
		acc.OptionID = row.OptionID
		acc.AdCost += row.AdCost
		acc.Impressions += row.Impressions
		acc.Clicks += row.Clicks
		acc.AdSalesQuantity += row.AdSalesQuantity
		acc.ConversionSales += row.ConversionSales
		grouped[row.OptionID] = acc
	}
	return grouped
}
