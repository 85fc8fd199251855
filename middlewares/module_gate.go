package middlewares

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ModuleGate answers whether a module is enabled for this deployment.
type ModuleGate interface {
	ModuleEnabled(ctx context.Context, key string) (bool, error)
}

// RequireModule short-circuits every request under it when the named module
// has been switched off. A gate lookup failure fails closed.
func RequireModule(key string, gate ModuleGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			enabled, err := gate.ModuleEnabled(c.Request().Context(), key)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
			}
			if !enabled {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "MODULE_DISABLED"})
			}
			return next(c)
		}
	}
}
