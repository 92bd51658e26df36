package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestResolveAllowedOrigin(t *testing.T) {
	if got := resolveAllowedOrigin("https://seller.example.com", []string{"*"}, false); got != "*" {
		t.Fatalf("wildcard without credentials want *, got %s", got)
	}
	if got := resolveAllowedOrigin("https://seller.example.com", []string{"*"}, true); got != "https://seller.example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}
	if got := resolveAllowedOrigin("https://app.sellstat.kr", []string{"https://app.sellstat.kr", "https://admin.sellstat.kr"}, false); got != "https://app.sellstat.kr" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}
	if got := resolveAllowedOrigin("https://evil.example.com", []string{"https://app.sellstat.kr"}, false); got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-settle-1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-settle-1" {
		t.Fatalf("response request id want req-settle-1 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-settle-1" {
		t.Fatalf("context request id want req-settle-1 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/records", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestIsIssuedAfterInvalidBefore(t *testing.T) {
	now := time.Now()
	issued := jwt.NewNumericDate(now)

	if !isIssuedAfterInvalidBefore(issued, nil) {
		t.Fatalf("nil invalid-before should always pass")
	}
	if isIssuedAfterInvalidBefore(nil, &now) {
		t.Fatalf("missing issued-at should be rejected when invalid-before is set")
	}
	before := now.Add(-time.Hour)
	if !isIssuedAfterInvalidBefore(issued, &before) {
		t.Fatalf("token issued after the cut should pass")
	}
	after := now.Add(time.Hour)
	if isIssuedAfterInvalidBefore(issued, &after) {
		t.Fatalf("token issued before the cut should be rejected")
	}

	if !isIssuedAfterInvalidBeforeUnix(issued, 0) {
		t.Fatalf("zero unix cut should always pass")
	}
	if isIssuedAfterInvalidBeforeUnix(issued, now.Add(time.Hour).Unix()) {
		t.Fatalf("unix cut in the future should reject")
	}
}
