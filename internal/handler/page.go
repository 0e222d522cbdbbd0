package handler

import (
	"github.com/labstack/echo/v4"

	"inkwell/internal/session"
)

// page builds the base template data every view expects: the session
// snapshot (nil on ungated routes without one) and any pending flash.
func page(c echo.Context, extra echo.Map) echo.Map {
	data := echo.Map{
		"Session": session.FromContext(c),
		"Flash":   popFlash(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
