package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// ModuleStore is the slice of the storage layer the module-toggle surface
// needs.
type ModuleStore interface {
	ListModules(ctx context.Context) ([]models.ModuleFlag, error)
	SetModule(ctx context.Context, key string, enabled bool) (models.ModuleFlag, error)
}

// ModuleHandler is the admin surface for per-module toggles.
type ModuleHandler struct {
	Store ModuleStore
}

func NewModuleHandler(store ModuleStore) *ModuleHandler { return &ModuleHandler{Store: store} }

type moduleReq struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GET /admin/modules
func (h *ModuleHandler) List(c echo.Context) error {
	rows, err := h.Store.ListModules(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"modules": rows})
}

// PUT /admin/modules/:key
func (h *ModuleHandler) Put(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_KEY"})
	}
	var req moduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	flag, err := h.Store.SetModule(c.Request().Context(), key, *req.Enabled)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, flag)
}
