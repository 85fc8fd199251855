package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
)

// attendanceError maps business errors onto the wire convention:
// validation 400, authorization and policy 403 (the cutoff rejection carries
// locked:true so clients can offer the edit-request path), missing target
// 404, re-deciding 400, anything else 500. Store failures are safe to retry;
// every write is an idempotent upsert.
func attendanceError(c echo.Context, err error) error {
	var verr attendance.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": string(verr)})
	case errors.Is(err, attendance.ErrNotAssigned):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NOT_ASSIGNED"})
	case errors.Is(err, attendance.ErrLocked):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "ATTENDANCE_LOCKED", "locked": true})
	case errors.Is(err, attendance.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, attendance.ErrAlreadyDecided):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "ALREADY_DECIDED"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
}
