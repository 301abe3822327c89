package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/core/domain"
)

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRemoteAuth_Verified(t *testing.T) {
	var seenPath, seenAuth string
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"user_1","email":"ada@example.com","role":"user"}}`))
	}))
	defer identity.Close()

	e := echo.New()
	token := signedToken(t, "user_1")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := RemoteAuth(identity.URL, zerolog.Nop())(func(c echo.Context) error {
		called = true
		user, _ := c.Get(ContextUserKey).(*domain.User)
		if user == nil || user.ID != "user_1" {
			t.Fatalf("user not attached: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if seenPath != "/api/v1/users/get-current-user/user_1" {
		t.Fatalf("unexpected verification path: %q", seenPath)
	}
	if seenAuth != "Bearer "+token {
		t.Fatalf("bearer token not forwarded: %q", seenAuth)
	}
}

func TestRemoteAuth_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RemoteAuth("http://identity", zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestRemoteAuth_MalformedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RemoteAuth("http://identity", zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRemoteAuth_UpstreamRejects(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer identity.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, "user_1"))
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RemoteAuth(identity.URL, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrUpstreamVerify {
		t.Fatalf("expected ErrUpstreamVerify, got %v", err)
	}
}

func TestRemoteAuth_UpstreamDown(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, "user_1"))
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RemoteAuth("http://127.0.0.1:1", zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrUpstreamVerify {
		t.Fatalf("expected ErrUpstreamVerify, got %v", err)
	}
}

func TestRemoteAuth_MalformedUpstreamPayload(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer identity.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, "user_1"))
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RemoteAuth(identity.URL, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != domain.ErrUpstreamVerify {
		t.Fatalf("expected ErrUpstreamVerify, got %v", err)
	}
}
