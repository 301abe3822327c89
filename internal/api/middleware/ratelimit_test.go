package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/infrastructure/ratelimit"
)

type failingLimiter struct{}

func (failingLimiter) Allow(_ context.Context, _ string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("backend down")
}

func TestRateLimit_Allowed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	limiter := ratelimit.NewMemoryLimiter(5, time.Minute)
	mw := RateLimit("test", limiter, zerolog.Nop())

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRateLimit_DeniedBody(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewMemoryLimiter(1, 30*time.Second)
	mw := RateLimit("test", limiter, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Exhaust the budget, then expect the canonical 429 envelope.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "1.2.3.4:5678"
	if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("first request: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatalf("deny envelope must have success=false")
	}
	if body.Message != "Rate limit exceeded. Try again in 30s" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestRateLimit_SeparateClientsSeparateBudgets(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewMemoryLimiter(1, time.Minute)
	mw := RateLimit("test", limiter, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "1.2.3.4:1111"
	if err := handler(e.NewContext(first, httptest.NewRecorder())); err != nil {
		t.Fatalf("first client: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(first, rec)); err != nil {
		t.Fatalf("first client again: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first client must be throttled, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "5.6.7.8:2222"
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(second, rec)); err != nil {
		t.Fatalf("second client: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("second client must be admitted, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RateLimit("test", failingLimiter{}, zerolog.Nop())
	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("a limiter failure must admit the request")
	}
}
