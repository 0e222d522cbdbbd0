package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inkwell/internal/handler"
)

// RegisterExpense wires the expense tracker routes. The expense variant
// has no accounts and no gate: list and create only.
func RegisterExpense(e *echo.Echo, expenseHandler *handler.ExpenseHandler) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/", expenseHandler.List)
	e.POST("/add", expenseHandler.Add)
}
