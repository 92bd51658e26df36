package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234,567", 1234567},
		{"12.5%", 12.5},
		{"8000원", 8000},
		{"-5000", -5000},
		{"", 0},
		{"-", 0},
		{"NaN", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := ParseNumber(c.in); got != c.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1,234", 1234},
		{"12.0", 12},
		{"-3", -3},
		{"", 0},
	}
	for _, c := range cases {
		if got := ParseCount(c.in); got != c.want {
			t.Errorf("ParseCount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeHeader(t *testing.T) {
	if got := NormalizeHeader(" 옵션 ID \n"); got != "옵션id" {
		t.Fatalf("NormalizeHeader = %q", got)
	}
}

func salesHeader() []string {
	return []string{"옵션ID", "옵션명", "상품명", "순판매금액", "순판매상품수", "주문수", "총거래금액", "총거래상품수"}
}

func TestParseSales(t *testing.T) {
	rows := [][]string{
		salesHeader(),
		{"OPT-1", "블랙/L", "기모 맨투맨", "100,000", "10", "9", "110,000", "11"},
		{"", "", "", "1", "1", "1", "1", "1"}, // 옵션ID 없는 행은 건너뛴다
		{"OPT-2", "화이트/M", "기모 맨투맨", "-5,000", "0", "0", "0", "0"},
	}

	parsed, err := ParseSales(rows)
	if err != nil {
		t.Fatalf("ParseSales: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("len = %d, want 2", len(parsed))
	}
	if parsed[0].OptionID != "OPT-1" || parsed[0].SalesAmount != 100000 || parsed[0].SalesQuantity != 10 {
		t.Fatalf("unexpected row: %+v", parsed[0])
	}
	if parsed[1].SalesAmount != -5000 {
		t.Fatalf("refund row must keep negative amount: %+v", parsed[1])
	}
}

func TestParseSalesMissingColumns(t *testing.T) {
	rows := [][]string{
		{"옵션ID", "상품명", "순판매금액"},
		{"OPT-1", "기모 맨투맨", "100,000"},
	}

	_, err := ParseSales(rows)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("want MissingColumnsError, got %v", err)
	}
	found := false
	for _, col := range missing.Columns {
		if col == "order_count" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing set must name order_count: %+v", missing.Columns)
	}
}

func TestParseAds(t *testing.T) {
	rows := [][]string{
		{"광고집행 옵션ID", "광고비", "노출수", "클릭수", "총 판매수량(14일)", "총 전환매출액(14일)"},
		{"OPT-1", "3,000", "1000", "50", "3", "30,000"},
		{"OPT-1", "2,000", "500", "20", "1", "10,000"},
		{"OPT-2", "1,000", "100", "5", "0", "0"},
	}

	parsed, ok := ParseAds(rows)
	if !ok {
		t.Fatal("ParseAds reported missing columns")
	}
	grouped := GroupAdsByOption(parsed)
	if len(grouped) != 2 {
		t.Fatalf("grouped len = %d, want 2", len(grouped))
	}
	opt1 := grouped["OPT-1"]
	if opt1.AdCost != 5000 || opt1.Impressions != 1500 || opt1.Clicks != 70 || opt1.ConversionSales != 40000 {
		t.Fatalf("unexpected grouped row: %+v", opt1)
	}
}

func TestParseAdsMissingColumns(t *testing.T) {
	rows := [][]string{
		{"캠페인명", "노출수"},
		{"캠페인A", "1000"},
	}
	parsed, ok := ParseAds(rows)
	if ok || parsed != nil {
		t.Fatalf("want empty result with ok=false, got %v %v", parsed, ok)
	}
}

func TestParseMargins(t *testing.T) {
	rows := [][]string{
		{"옵션ID", "상품명", "옵션명", "원가", "판매가", "마진", "마진율", "수수료율", "수수료", "부가세"},
		{"OPT-1", "기모 맨투맨", "블랙/L", "8,000", "20,000", "9,000", "45%", "10.8%", "2,160", "840"},
	}

	parsed, err := ParseMargins(rows)
	if err != nil {
		t.Fatalf("ParseMargins: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("len = %d, want 1", len(parsed))
	}
	m := parsed[0]
	if m.CostPrice != 8000 || m.MarginRate != 45 || m.FeeRate != 10.8 || m.VAT != 840 {
		t.Fatalf("unexpected row: %+v", m)
	}
}

func TestReadTableCSVWithBOM(t *testing.T) {
	csv := "\ufeff옵션ID,광고비\nOPT-1,\"1,000\"\n"
	rows, err := ReadTable("ads.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if rows[0][0] != "옵션ID" {
		t.Fatalf("BOM not stripped: %q", rows[0][0])
	}
	if rows[1][1] != "1,000" {
		t.Fatalf("unexpected cell: %q", rows[1][1])
	}
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"옵션ID", "순판매금액"})
	_ = f.SetSheetRow(sheet, "A2", &[]any{"OPT-1", 100000})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	rows, err := ReadTable("sales.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "옵션ID" || rows[1][0] != "OPT-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestReadTableUnsupportedFormat(t *testing.T) {
	_, err := ReadTable("report.pdf", strings.NewReader("x"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}
