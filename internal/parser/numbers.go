package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber 숫자 셀 강제 변환
// 콤마/퍼센트/통화 표기를 벗기고 decimal 로 파싱한 뒤 float64 로
// 내린다. 빈 값, "-", 파싱 불가 값은 전부 0. 음수는 그대로 둔다.
func ParseNumber(s string) float64 {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ParseCount 수량/건수 셀 강제 변환
// "1,234.0" 같은 소수 표기도 정수로 내린다.
func ParseCount(s string) int {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, "원")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return ""
	}
	// 스프레드시트가 뱉는 nan 표기는 0 취급
	switch strings.ToLower(s) {
	case "nan", "null", "none":
		return ""
	}
	return s
}
