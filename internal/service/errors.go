package service

import "errors"

// 서비스 계층 공용 오류
// 핸들러는 errors.Is 로 분기해 HTTP 응답 코드를 정한다.
var (
	ErrNotFound           = errors.New("대상을 찾을 수 없습니다")
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 올바르지 않습니다")
	ErrInvalidPassword    = errors.New("현재 비밀번호가 올바르지 않습니다")
	ErrWeakPassword       = errors.New("비밀번호가 보안 정책에 맞지 않습니다")
	ErrEmailTaken         = errors.New("이미 사용 중인 이메일입니다")
	ErrTenantDisabled     = errors.New("비활성화된 계정입니다")
	ErrDuplicateKey       = errors.New("동일한 키의 데이터가 이미 존재합니다")
	ErrInvalidInput       = errors.New("입력값이 올바르지 않습니다")
	ErrInvalidDate        = errors.New("일자 형식이 올바르지 않습니다 (YYYY-MM-DD)")
)
