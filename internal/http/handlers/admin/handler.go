package admin

import "github.com/sellstat-next/internal/provider"

// Handler 관리자 API 처리기 입구
// 설명: 전체 테넌트 운영 관리용. casbin 정책으로 role:admin 만 접근한다.
type Handler struct {
	*provider.Container
}

// New 관리자 처리기 생성
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
