package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/api/middleware"
	"github.com/payflex/banking-system/internal/core/domain"
)

type stubTxRepo struct {
	byUser map[string][]domain.Transaction
}

func (r *stubTxRepo) FindByUserID(_ context.Context, userID string) ([]domain.Transaction, error) {
	return r.byUser[userID], nil
}

func (r *stubTxRepo) FindByID(_ context.Context, _ string) (*domain.Transaction, error) {
	return nil, domain.ErrTransactionNotFound
}

type stubUserRepo struct {
	byID map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func authedContext(e *echo.Echo, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

func TestUserHandler_CurrentUser(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserRepo{}, &stubTxRepo{})

	c, rec := authedContext(e, &domain.User{ID: "user_1", Email: "ada@example.com", Role: domain.RoleUser})
	c.SetParamNames("id")
	c.SetParamValues("user_1")

	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_CurrentUser_IDMismatch(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserRepo{}, &stubTxRepo{})

	c, _ := authedContext(e, &domain.User{ID: "user_1"})
	c.SetParamNames("id")
	c.SetParamValues("someone_else")

	// A token for one user must not verify a lookup for another.
	if err := h.CurrentUser(c); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUserHandler_CurrentUser_Unauthenticated(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserRepo{}, &stubTxRepo{})

	c, _ := authedContext(e, nil)
	if err := h.CurrentUser(c); err != domain.ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestUserHandler_UserByID(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserRepo{byID: map[string]*domain.User{
		"user_2": {ID: "user_2", Email: "bob@example.com", Role: domain.RoleUser},
	}}, &stubTxRepo{})

	c, rec := authedContext(e, &domain.User{ID: "admin_1", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("user_2")

	if err := h.UserByID(c); err != nil {
		t.Fatalf("UserByID returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bob@example.com") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_UserByID_NotFound(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserRepo{}, &stubTxRepo{})

	c, _ := authedContext(e, &domain.User{ID: "admin_1", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := h.UserByID(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestUserHandler_Dashboard(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserRepo{}, &stubTxRepo{byUser: map[string][]domain.Transaction{
		"user_1": {{ID: "tx_1", UserID: "user_1", Name: "Groceries"}},
	}})

	c, rec := authedContext(e, &domain.User{ID: "user_1", Email: "ada@example.com"})
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "tx_1") {
		t.Fatalf("dashboard must include transactions: %s", body)
	}
}
