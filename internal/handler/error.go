package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
)

// ErrorHandler renders domain and HTTP errors as an HTML error page.
// Storage and database failures collapse into a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := apperrors.StatusFor(err)
	message := err.Error()
	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		message = "something went wrong"
	}

	if renderErr := c.Render(code, "error.html", echo.Map{
		"Code":    code,
		"Message": message,
	}); renderErr != nil {
		c.Logger().Error(renderErr)
	}
}
