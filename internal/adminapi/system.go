package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *API) registerSystemRoutes() {
	a.server.ApiGET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello World! This is the OrderDesk API.")
	})
	a.server.ApiGET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
