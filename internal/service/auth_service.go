package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sellstat-next/internal/cache"
	"github.com/sellstat-next/internal/config"
	"github.com/sellstat-next/internal/constants"
	"github.com/sellstat-next/internal/models"
	"github.com/sellstat-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 인증 서비스
type AuthService struct {
	cfg        *config.Config
	tenantRepo repository.TenantRepository
}

// NewAuthService 인증 서비스 생성
func NewAuthService(cfg *config.Config, tenantRepo repository.TenantRepository) *AuthService {
	return &AuthService{
		cfg:        cfg,
		tenantRepo: tenantRepo,
	}
}

// HashPassword bcrypt 로 비밀번호 해시
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 비밀번호 검증
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 비밀번호 정책 검사
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 클레임
type JWTClaims struct {
	TenantID     uint   `json:"tenant_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT JWT 토큰 발급
func (s *AuthService) GenerateJWT(tenant *models.Tenant) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		TenantID:     tenant.ID,
		Email:        tenant.Email,
		Role:         tenant.Role,
		TokenVersion: tenant.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT JWT 토큰 파싱
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("유효하지 않은 토큰")
}

// Register 셀러 테넌트 가입
func (s *AuthService) Register(email, password string) (*models.Tenant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.tenantRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		Email:        email,
		PasswordHash: hash,
		Role:         constants.TenantRoleSeller,
		Status:       constants.TenantStatusActive,
	}
	if err := s.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Login 테넌트 로그인
func (s *AuthService) Login(email, password string) (*models.Tenant, string, time.Time, error) {
	tenant, err := s.tenantRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if tenant == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(tenant.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if tenant.Status != constants.TenantStatusActive {
		return nil, "", time.Time{}, ErrTenantDisabled
	}

	token, expiresAt, err := s.GenerateJWT(tenant)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	tenant.LastLoginAt = &now
	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetTenantAuthState(context.Background(), cache.BuildTenantAuthState(tenant))

	return tenant, token, expiresAt, nil
}

// ChangePassword 비밀번호 변경
// 변경 즉시 기존 토큰을 전부 무효화한다.
func (s *AuthService) ChangePassword(tenantID uint, oldPassword, newPassword string) error {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(tenant.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	tenant.PasswordHash = hashedPassword
	now := time.Now()
	tenant.TokenVersion++
	tenant.TokenInvalidBefore = &now
	if err := s.tenantRepo.Update(tenant); err != nil {
		return err
	}
	_ = cache.SetTenantAuthState(context.Background(), cache.BuildTenantAuthState(tenant))
	return nil
}
