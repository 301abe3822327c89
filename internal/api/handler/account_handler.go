package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/core/ports"
)

type AccountHandler struct {
	banking ports.BankingService
}

func NewAccountHandler(banking ports.BankingService) *AccountHandler {
	return &AccountHandler{banking: banking}
}

// Accounts lists the authenticated user's accounts.
//
// @Summary      List accounts
// @Tags         banking
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /banking/accounts [get]
func (h *AccountHandler) Accounts(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	accounts, err := h.banking.Accounts(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok("Accounts retrieved successfully", map[string]any{
		"accounts": accounts,
	}))
}
