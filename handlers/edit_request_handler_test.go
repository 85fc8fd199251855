package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/handlers"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/storage/inmem"
)

func createBody() map[string]any {
	return map[string]any{
		"classId":   10,
		"sectionId": 2,
		"date":      "2026-03-09",
		"reason":    "marked the wrong row",
		"changes": []map[string]any{
			{"studentId": 5, "fromStatus": "absent", "toStatus": "present"},
		},
	}
}

func TestCreateEditRequestEndpoint(t *testing.T) {
	e := newEcho()
	store := inmem.New()
	store.AddAssignment(7, 10, 2)
	h := handlers.NewEditRequestHandler(newWorkflow(store))

	c, rec := request(t, e, http.MethodPost, "/teacher/edit-requests", createBody(), teacherIdentity(3, 7))
	run(t, e, h.Create, c)

	require.Equal(t, http.StatusCreated, rec.Code)
	req := decode(t, rec)["request"].(map[string]any)
	assert.Equal(t, "pending", req["status"])
	assert.NotEmpty(t, req["reference"])

	// Proposal only: the record set is untouched.
	_, ok := store.Record(5, "2026-03-09", "")
	assert.False(t, ok)
}

func TestCreateEditRequestAllInvalidChanges(t *testing.T) {
	e := newEcho()
	store := inmem.New()
	store.AddAssignment(7, 10, 2)
	h := handlers.NewEditRequestHandler(newWorkflow(store))

	body := createBody()
	body["changes"] = []map[string]any{{"studentId": 5, "toStatus": "vacation"}}
	c, rec := request(t, e, http.MethodPost, "/teacher/edit-requests", body, teacherIdentity(3, 7))
	run(t, e, h.Create, c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_CHANGES", decode(t, rec)["error"])
}

func TestDecideEndpointApprove(t *testing.T) {
	e := newEcho()
	store := inmem.New()
	store.AddAssignment(7, 10, 2)
	h := handlers.NewEditRequestHandler(newWorkflow(store))

	c, rec := request(t, e, http.MethodPost, "/teacher/edit-requests", createBody(), teacherIdentity(3, 7))
	run(t, e, h.Create, c)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["request"].(map[string]any)["id"].(float64)

	c, rec = request(t, e, http.MethodPatch, "/staff/edit-requests/1",
		map[string]any{"action": "approve", "reviewNote": "confirmed"}, staffIdentity(42))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(int(id)))
	run(t, e, h.Decide, c)

	require.Equal(t, http.StatusOK, rec.Code)
	req := decode(t, rec)["request"].(map[string]any)
	assert.Equal(t, "approved", req["status"])

	// Applied with the requesting teacher as marker.
	row, ok := store.Record(5, "2026-03-09", "")
	require.True(t, ok)
	assert.Equal(t, "present", row.Status)
	assert.Equal(t, uint(7), row.MarkedBy)
	assert.Len(t, store.Audits(), 1)
}

func TestDecideEndpointTwiceFails(t *testing.T) {
	e := newEcho()
	store := inmem.New()
	store.AddAssignment(7, 10, 2)
	h := handlers.NewEditRequestHandler(newWorkflow(store))

	c, rec := request(t, e, http.MethodPost, "/teacher/edit-requests", createBody(), teacherIdentity(3, 7))
	run(t, e, h.Create, c)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprint(int(decode(t, rec)["request"].(map[string]any)["id"].(float64)))

	c, rec = request(t, e, http.MethodPatch, "/staff/edit-requests/"+id,
		map[string]any{"action": "reject"}, staffIdentity(42))
	c.SetParamNames("id")
	c.SetParamValues(id)
	run(t, e, h.Decide, c)
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = request(t, e, http.MethodPatch, "/staff/edit-requests/"+id,
		map[string]any{"action": "approve"}, staffIdentity(42))
	c.SetParamNames("id")
	c.SetParamValues(id)
	run(t, e, h.Decide, c)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ALREADY_DECIDED", decode(t, rec)["error"])
}

func TestDecideEndpointUnknownRequest(t *testing.T) {
	e := newEcho()
	h := handlers.NewEditRequestHandler(newWorkflow(inmem.New()))

	c, rec := request(t, e, http.MethodPatch, "/staff/edit-requests/99",
		map[string]any{"action": "approve"}, staffIdentity(42))
	c.SetParamNames("id")
	c.SetParamValues("99")
	run(t, e, h.Decide, c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec)["error"])
}

func TestDecideEndpointInvalidAction(t *testing.T) {
	e := newEcho()
	h := handlers.NewEditRequestHandler(newWorkflow(inmem.New()))

	c, rec := request(t, e, http.MethodPatch, "/staff/edit-requests/1",
		map[string]any{"action": "defer"}, staffIdentity(42))
	c.SetParamNames("id")
	c.SetParamValues("1")
	run(t, e, h.Decide, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMineScopesToCaller(t *testing.T) {
	e := newEcho()
	store := inmem.New()
	store.AddAssignment(7, 10, 2)
	store.AddAssignment(8, 10, 2)
	h := handlers.NewEditRequestHandler(newWorkflow(store))

	for _, tid := range []uint{7, 8} {
		c, rec := request(t, e, http.MethodPost, "/teacher/edit-requests", createBody(), teacherIdentity(3, tid))
		run(t, e, h.Create, c)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	c, rec := request(t, e, http.MethodGet, "/teacher/edit-requests", nil, teacherIdentity(3, 7))
	run(t, e, h.ListMine, c)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode(t, rec)["requests"].([]any)
	require.Len(t, rows, 1)

	c, rec = request(t, e, http.MethodGet, "/staff/edit-requests", nil, staffIdentity(42))
	run(t, e, h.ListAll, c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["requests"].([]any), 2)
}
