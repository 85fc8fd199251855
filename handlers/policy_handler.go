package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

type PolicyHandler struct {
	Policy *attendance.PolicyService
}

func NewPolicyHandler(svc *attendance.PolicyService) *PolicyHandler {
	return &PolicyHandler{Policy: svc}
}

type policyDTO struct {
	CutoffTime      string `json:"cutoffTime"`
	IsLockedEnabled bool   `json:"isLockedEnabled"`
}

type policyPatchReq struct {
	CutoffTime      *string `json:"cutoffTime" validate:"omitempty,datetime=15:04"`
	IsLockedEnabled *bool   `json:"isLockedEnabled"`
}

func policyView(pol models.CutoffPolicy) policyDTO {
	return policyDTO{CutoffTime: pol.CutoffTime, IsLockedEnabled: pol.Enabled}
}

// GET /staff/attendance-policy
func (h *PolicyHandler) Get(c echo.Context) error {
	pol, err := h.Policy.Get(c.Request().Context())
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, policyView(pol))
}

// PUT /staff/attendance-policy
func (h *PolicyHandler) Put(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req policyPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.CutoffTime == nil && req.IsLockedEnabled == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "EMPTY_PATCH"})
	}

	pol, err := h.Policy.Set(c.Request().Context(), attendance.PolicyPatch{
		CutoffTime: req.CutoffTime,
		Enabled:    req.IsLockedEnabled,
	}, ident.UserID)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, policyView(pol))
}
