package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/core/domain"
)

type stubResolver struct {
	user *domain.User
	err  error
	seen string
}

func (r *stubResolver) Resolve(_ context.Context, token string) (*domain.User, error) {
	r.seen = token
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolver := &stubResolver{user: &domain.User{ID: "user_1", Role: domain.RoleUser}}
	called := false
	handler := Auth(resolver)(func(c echo.Context) error {
		called = true
		user, _ := c.Get(ContextUserKey).(*domain.User)
		if user == nil || user.ID != "user_1" {
			t.Fatalf("user not attached to context: %+v", user)
		}
		if c.Get(ContextTokenKey) != "good-token" {
			t.Fatalf("token not attached to context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if resolver.seen != "good-token" {
		t.Fatalf("resolver saw %q", resolver.seen)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(&stubResolver{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(&stubResolver{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestAuth_ResolverRejects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad-token")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(&stubResolver{err: domain.ErrInvalidToken})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
