package seller

import "github.com/sellstat-next/internal/provider"

// Handler 셀러 API 처리기 입구
// 설명: 로그인한 셀러(테넌트) 본인 데이터에 대한 API 전용.
type Handler struct {
	*provider.Container
}

// New 셀러 처리기 생성
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
