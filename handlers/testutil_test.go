package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/handlers"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/middlewares"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/storage/inmem"
)

// fixed test clock, 09:00 on 2026-03-10
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

const today = "2026-03-10"

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	return e
}

func newRecorder(store *inmem.Store) *attendance.Recorder {
	return &attendance.Recorder{
		Records:   store,
		Ownership: &attendance.OwnershipResolver{Assignments: store},
		Policy:    &attendance.PolicyService{Store: store},
		Directory: store,
		Now:       func() time.Time { return testNow },
	}
}

func newWorkflow(store *inmem.Store) *attendance.Workflow {
	return &attendance.Workflow{
		Requests:  store,
		Ownership: &attendance.OwnershipResolver{Assignments: store},
	}
}

// request builds an echo context carrying a JSON body and the given identity.
func request(t *testing.T, e *echo.Echo, method, target string, body any, ident *middlewares.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		middlewares.SetIdentity(c, *ident)
	}
	return c, rec
}

func teacherIdentity(userID, teacherID uint) *middlewares.Identity {
	tid := teacherID
	return &middlewares.Identity{UserID: userID, Role: "teacher", Name: "Test Teacher", TeacherID: &tid}
}

func staffIdentity(userID uint) *middlewares.Identity {
	return &middlewares.Identity{UserID: userID, Role: "staff", Name: "Test Staff"}
}

// decode unmarshals the recorded JSON body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// run executes a handler and, when it errors, writes the response the way the
// server's error handler would.
func run(t *testing.T, e *echo.Echo, h echo.HandlerFunc, c echo.Context) {
	t.Helper()
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}
