package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/middlewares"
)

// atoiOr parses s, falling back to def when empty or malformed.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// uintQuery parses an unsigned query parameter; 0 when absent or malformed.
func uintQuery(c echo.Context, name string) uint {
	n, err := strconv.ParseUint(c.QueryParam(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	return uint(n), nil
}

// identity returns the caller resolved by the auth middleware.
func identity(c echo.Context) (middlewares.Identity, error) {
	ident, ok := middlewares.IdentityFrom(c)
	if !ok {
		return middlewares.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "MISSING_IDENTITY"})
	}
	return ident, nil
}

// teacherID resolves the caller's linked teacher profile; marking and
// requesting edits both need one.
func teacherID(c echo.Context) (uint, error) {
	ident, err := identity(c)
	if err != nil {
		return 0, err
	}
	if ident.TeacherID == nil {
		return 0, echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "NO_TEACHER_PROFILE"})
	}
	return *ident.TeacherID, nil
}
