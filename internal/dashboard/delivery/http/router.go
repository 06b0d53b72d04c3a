package http

import (
	"net/http"

	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	swagger "github.com/swaggo/echo-swagger"
)

// NewServer builds the Echo instance serving the HTML pages, the JSON API under /api/v1 and the swagger UI.
func NewServer(dashboardService service.DashboardService, log *logger.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger(log))

	pageHandler, err := NewPageHandler(dashboardService, log)
	if err != nil {
		return nil, err
	}
	pageHandler.RegisterRoutes(e)

	dashboardHandler := NewDashboardHandler(dashboardService, log)
	apiV1 := e.Group("/api/v1")
	dashboardHandler.RegisterRoutes(apiV1)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	return e, nil
}
