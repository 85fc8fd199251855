package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/middlewares"
)

type fakeGate struct {
	enabled bool
	err     error
}

func (g fakeGate) ModuleEnabled(ctx context.Context, key string) (bool, error) {
	return g.enabled, g.err
}

func gateStatus(t *testing.T, gate fakeGate) int {
	t.Helper()
	e := echo.New()
	h := middlewares.RequireModule("student_attendance", gate)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRequireModule(t *testing.T) {
	assert.Equal(t, http.StatusOK, gateStatus(t, fakeGate{enabled: true}))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, fakeGate{enabled: false}))
	// Lookup failures fail closed.
	assert.Equal(t, http.StatusInternalServerError, gateStatus(t, fakeGate{enabled: true, err: errors.New("down")}))
}
