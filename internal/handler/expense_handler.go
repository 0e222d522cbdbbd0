package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"inkwell/internal/service"
)

// ExpenseHandler handles the expense tracker routes.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the add expense form. Amount arrives as text
// and is parsed into a decimal before it reaches the service.
type ExpenseRequest struct {
	Amount   string `form:"amount" validate:"required"`
	Category string `form:"category" validate:"required"`
}

// List renders all expenses with the inline add form.
func (h *ExpenseHandler) List(c echo.Context) error {
	expenses, err := h.expenseService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "expenses.html", echo.Map{
		"Expenses": expenses,
		"Flash":    popFlash(c),
	})
}

// Add creates an expense and redirects back to the listing.
func (h *ExpenseHandler) Add(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		setFlash(c, "amount and category are required")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		setFlash(c, "amount must be a number")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if _, err := h.expenseService.Create(c.Request().Context(), amount, req.Category); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
