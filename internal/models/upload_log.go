package models

import (
	"time"
)

// UploadLog 정산 파일 업로드 실행 이력
// 업로드 한 번당 한 행. 요약 수치와 경고 목록(JSON)을 남긴다.
type UploadLog struct {
	ID         uint   `gorm:"primarykey" json:"id"`          // 기본키
	TenantID   uint   `gorm:"index;not null" json:"tenant_id"` // 테넌트 ID
	TargetDate string `gorm:"type:varchar(10);index" json:"target_date"` // 반영 일자

	SalesFile string `json:"sales_file"` // 판매 파일명
	AdsFile   string `json:"ads_file"`   // 광고 파일명

	Upserted      int `json:"upserted"`       // 생성/갱신된 레코드 수
	AdsMatched    int `json:"ads_matched"`    // 광고 데이터가 붙은 레코드 수
	MarginMatched int `json:"margin_matched"` // 마진 마스터가 붙은 레코드 수
	Skipped       int `json:"skipped"`        // 행 단위 오류로 건너뛴 수

	Warnings   string `gorm:"type:text" json:"warnings"` // 경고 목록 (JSON 배열)
	DurationMS int64  `json:"duration_ms"`               // 처리 시간 (ms)

	CreatedAt time.Time `gorm:"index" json:"created_at"` // 생성 시각
}

// TableName 테이블명 지정
func (UploadLog) TableName() string {
	return "upload_logs"
}
