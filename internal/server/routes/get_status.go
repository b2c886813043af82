package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigil-mini/backend/internal/server/middleware"
)

func GetRootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":        "Vigil Mini",
		"description": "Civic-tech tool for visualizing U.S. lobbying relationships",
		"status":      "running",
	})
}

func GetHealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func GetLDAPingHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	res, err := app.LDA.Ping(ctx)
	if err != nil {
		return upstreamError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}
