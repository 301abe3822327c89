package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

// UserHandler serves identity reads: the current-user endpoint downstream
// services verify against, the dashboard, and the admin user lookup.
type UserHandler struct {
	users        ports.UserRepository
	transactions ports.TransactionRepository
}

func NewUserHandler(users ports.UserRepository, transactions ports.TransactionRepository) *UserHandler {
	return &UserHandler{users: users, transactions: transactions}
}

// CurrentUser returns the resolved identity. This is the verification
// endpoint consumed by the banking and transaction services; the path id must
// match the identity behind the presented token.
//
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope{data=userView}
// @Failure      401  {object}  envelope
// @Router       /users/get-current-user/{id} [get]
func (h *UserHandler) CurrentUser(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if id := c.Param("id"); id != "" && id != user.ID {
		return domain.ErrInvalidToken
	}
	return c.JSON(http.StatusOK, ok("User retrieved successfully", toUserView(user)))
}

// UserByID returns any user's identity. Admin surface; RBAC runs before this.
//
// @Summary      Get a user by id
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope{data=userView}
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /admin/users/{id} [get]
func (h *UserHandler) UserByID(c echo.Context) error {
	user, err := h.users.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, domain.ErrUserNotFound.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, ok("User retrieved successfully", toUserView(user)))
}

type dashboardResponse struct {
	User         userView             `json:"user"`
	Transactions []domain.Transaction `json:"transactions"`
}

// Dashboard returns the identity plus recent transactions.
//
// @Summary      Get user dashboard
// @Tags         users
// @Produce      json
// @Success      200  {object}  envelope{data=dashboardResponse}
// @Failure      401  {object}  envelope
// @Router       /users/dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	transactions, err := h.transactions.FindByUserID(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok("User dashboard data retrieved successfully", dashboardResponse{
		User:         toUserView(user),
		Transactions: transactions,
	}))
}
