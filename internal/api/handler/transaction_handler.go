package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

type TransactionHandler struct {
	transactions ports.TransactionService
}

func NewTransactionHandler(transactions ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// History lists the authenticated user's transactions, newest first.
//
// @Summary      Get transaction history
// @Tags         transactions
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /transactions [get]
func (h *TransactionHandler) History(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	history, err := h.transactions.History(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	if len(history) == 0 {
		return c.JSON(http.StatusOK, ok("No transaction histories at the moment", []domain.Transaction{}))
	}
	return c.JSON(http.StatusOK, ok("Transaction histories retrieved", history))
}

// Transaction fetches one transaction owned by the authenticated user.
//
// @Summary      Get a single transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Transaction(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	tx, err := h.transactions.Transaction(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Transaction retrieved successfully", tx))
}
