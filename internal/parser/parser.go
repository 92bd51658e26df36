// Package parser 업로드 파일 파싱 계층
//
// 쿠팡 셀러 포털에서 내려받은 판매/광고/마진 스프레드시트를 타입이
// 있는 행으로 변환한다. 서비스 계층은 원시 셀을 절대 보지 않는다.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat 지원하지 않는 파일 확장자
var ErrUnsupportedFormat = errors.New("지원하지 않는 파일 형식")

// MissingColumnsError 필수 컬럼 누락 오류
// 누락된 컬럼명 전체를 담아 업로드 응답에 그대로 노출한다.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("필수 컬럼 누락: %s", strings.Join(e.Columns, ", "))
}

// ReadTable 확장자에 따라 파일을 행렬로 읽는다
// xlsx 는 첫 번째 시트만, csv 는 UTF-8 BOM 을 벗겨 읽는다.
func ReadTable(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx 열기 실패: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("시트가 없는 파일")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("시트 읽기 실패: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv 읽기 실패: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeHeader 컬럼명 정규화
// 공백/개행 제거 후 영문은 소문자로 통일한다.
func NormalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	name = spaceRe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// mapHeaders 헤더 행을 정규화해 canonical 필드 → 컬럼 인덱스 맵 생성
// aliases 는 canonical 필드명 → 정규화된 별칭 목록.
func mapHeaders(header []string, aliases map[string][]string) map[string]int {
	indexByName := make(map[string]int, len(header))
	for i, raw := range header {
		name := NormalizeHeader(raw)
		if name == "" {
			continue
		}
		if _, ok := indexByName[name]; !ok {
			indexByName[name] = i
		}
	}

	mapped := make(map[string]int, len(aliases))
	for field, names := range aliases {
		for _, name := range names {
			if idx, ok := indexByName[name]; ok {
				mapped[field] = idx
				break
			}
		}
	}
	return mapped
}

// fieldGetter 매핑된 컬럼에서 셀을 꺼내는 접근자
// 매핑이 없거나 행이 짧으면 빈 문자열을 준다.
func fieldGetter(row []string, cols map[string]int) func(field string) string {
	return func(field string) string {
		idx, ok := cols[field]
		if !ok || idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
}
