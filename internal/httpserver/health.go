package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type HealthHTTP struct {
	DB *gorm.DB
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *HealthHTTP) Ready(c echo.Context) error {
	if err := db.Ping(c.Request().Context(), h.DB); err != nil {
		logging.FromContext(c.Request().Context()).Warn("not_ready", "status", 503, "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}

// DBTest reports row-store connectivity as a status body rather than an error.
func (h *HealthHTTP) DBTest(c echo.Context) error {
	if err := db.Ping(c.Request().Context(), h.DB); err != nil {
		logging.FromContext(c.Request().Context()).Error("db_test_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.StatusResponse{Status: "error"})
	}
	return c.JSON(http.StatusOK, transport.StatusResponse{Status: "connected"})
}
