package attendance_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/storage/inmem"
)

func newWorkflow(store *inmem.Store) *attendance.Workflow {
	seq := 0
	return &attendance.Workflow{
		Requests:  store,
		Ownership: &attendance.OwnershipResolver{Assignments: store},
		NewReference: func() string {
			seq++
			return string(rune('A' + seq - 1))
		},
	}
}

func seedChange(studentID uint, to string) attendance.ChangeInput {
	return attendance.ChangeInput{StudentID: studentID, FromStatus: models.StatusAbsent, ToStatus: to}
}

func TestCreateFiltersInvalidChanges(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	wf := newWorkflow(store)
	ctx := context.Background()

	req, err := wf.Create(ctx, 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09", Reason: "marked wrong student",
		Changes: []attendance.ChangeInput{
			seedChange(5, models.StatusPresent),
			{StudentID: 0, ToStatus: models.StatusPresent},
			{StudentID: 6, ToStatus: "vacation"},
			seedChange(7, models.StatusLeave),
		},
	})
	require.NoError(t, err)
	require.Len(t, req.Changes, 2)
	assert.Equal(t, uint(5), req.Changes[0].StudentID)
	assert.Equal(t, uint(7), req.Changes[1].StudentID)
	assert.Equal(t, 0, req.Changes[0].Position)
	assert.Equal(t, 1, req.Changes[1].Position)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, req.Reference)
}

func TestCreateRejectsEmptyRemainder(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	wf := newWorkflow(store)

	_, err := wf.Create(context.Background(), 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{{StudentID: 0, ToStatus: models.StatusPresent}},
	})
	assert.Equal(t, attendance.ValidationError("EMPTY_CHANGES"), err)

	_, err = wf.Create(context.Background(), 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "not-a-date",
		Changes: []attendance.ChangeInput{seedChange(5, models.StatusPresent)},
	})
	assert.Equal(t, attendance.ValidationError("INVALID_DATE"), err)
}

func TestCreateRequiresAssignment(t *testing.T) {
	store := inmem.New()
	wf := newWorkflow(store)

	_, err := wf.Create(context.Background(), 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{seedChange(5, models.StatusPresent)},
	})
	assert.ErrorIs(t, err, attendance.ErrNotAssigned)
}

func TestCreateDoesNotTouchRecords(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	wf := newWorkflow(store)

	_, err := wf.Create(context.Background(), 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{seedChange(5, models.StatusPresent)},
	})
	require.NoError(t, err)

	_, ok := store.Record(5, "2026-03-09", "")
	assert.False(t, ok, "creation is a proposal, not an edit")
}

func TestApproveAppliesChangesWithRequesterProvenance(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	ctx := context.Background()

	// Existing record marked by the original teacher.
	require.NoError(t, store.UpsertRecord(ctx, &models.AttendanceRecord{
		StudentID: 5, Date: "2026-03-09", ClassID: 10, SectionID: 2,
		Status: models.StatusAbsent, MarkedBy: 1,
	}))

	wf := newWorkflow(store)
	req, err := wf.Create(ctx, 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09", Reason: "was present",
		Changes: []attendance.ChangeInput{
			seedChange(5, models.StatusPresent),
			seedChange(6, models.StatusLate), // no prior record
		},
	})
	require.NoError(t, err)

	decided, err := wf.Decide(ctx, req.ID, 42, attendance.ActionApprove, "checked with office")
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, decided.Status)
	require.NotNil(t, decided.ReviewedBy)
	assert.Equal(t, uint(42), *decided.ReviewedBy)
	assert.NotNil(t, decided.ReviewedAt)
	assert.Equal(t, "checked with office", decided.ReviewNote)

	// Records now carry the requested statuses, attributed to the requester
	// rather than the reviewer.
	row, ok := store.Record(5, "2026-03-09", "")
	require.True(t, ok)
	assert.Equal(t, models.StatusPresent, row.Status)
	assert.Equal(t, uint(1), row.MarkedBy)

	created, ok := store.Record(6, "2026-03-09", "")
	require.True(t, ok)
	assert.Equal(t, models.StatusLate, created.Status)
	assert.Equal(t, uint(1), created.MarkedBy)
}

func TestApproveWritesOneAuditEntry(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	ctx := context.Background()

	require.NoError(t, store.UpsertRecord(ctx, &models.AttendanceRecord{
		StudentID: 5, Date: "2026-03-09", ClassID: 10, SectionID: 2,
		Status: models.StatusAbsent, MarkedBy: 1,
	}))

	wf := newWorkflow(store)
	req, err := wf.Create(ctx, 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{
			seedChange(5, models.StatusPresent),
			seedChange(6, models.StatusLate),
		},
	})
	require.NoError(t, err)

	_, err = wf.Decide(ctx, req.ID, 42, attendance.ActionApprove, "")
	require.NoError(t, err)

	audits := store.Audits()
	require.Len(t, audits, 1)
	entry := audits[0]
	assert.Equal(t, "attendance_edit_request.approved", entry.Action)
	assert.Equal(t, req.ID, entry.EntityID)
	assert.Equal(t, uint(42), entry.ActorID)

	var before, after []map[string]any
	require.NoError(t, json.Unmarshal(entry.Before, &before))
	require.NoError(t, json.Unmarshal(entry.After, &after))
	require.Len(t, before, 2)
	require.Len(t, after, 2)

	// First item existed before; second did not.
	assert.Equal(t, "absent", before[0]["status"])
	assert.Nil(t, before[1])
	assert.Equal(t, "present", after[0]["status"])
	assert.Equal(t, "late", after[1]["status"])
}

func TestRejectLeavesRecordsUntouched(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	ctx := context.Background()

	require.NoError(t, store.UpsertRecord(ctx, &models.AttendanceRecord{
		StudentID: 5, Date: "2026-03-09", ClassID: 10, SectionID: 2,
		Status: models.StatusAbsent, MarkedBy: 1,
	}))

	wf := newWorkflow(store)
	req, err := wf.Create(ctx, 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{seedChange(5, models.StatusPresent)},
	})
	require.NoError(t, err)

	decided, err := wf.Decide(ctx, req.ID, 42, attendance.ActionReject, "insufficient reason")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, decided.Status)
	assert.Equal(t, "insufficient reason", decided.ReviewNote)

	row, ok := store.Record(5, "2026-03-09", "")
	require.True(t, ok)
	assert.Equal(t, models.StatusAbsent, row.Status)

	audits := store.Audits()
	require.Len(t, audits, 1)
	assert.Equal(t, "attendance_edit_request.rejected", audits[0].Action)
}

func TestDecideExactlyOnce(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	ctx := context.Background()
	wf := newWorkflow(store)

	req, err := wf.Create(ctx, 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{seedChange(5, models.StatusPresent)},
	})
	require.NoError(t, err)

	_, err = wf.Decide(ctx, req.ID, 42, attendance.ActionReject, "")
	require.NoError(t, err)

	_, err = wf.Decide(ctx, req.ID, 42, attendance.ActionApprove, "")
	assert.ErrorIs(t, err, attendance.ErrAlreadyDecided)

	// The rejected request stayed rejected and nothing was applied.
	got, err := wf.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, got.Status)
	_, ok := store.Record(5, "2026-03-09", "")
	assert.False(t, ok)
}

func TestDecideValidation(t *testing.T) {
	store := inmem.New()
	wf := newWorkflow(store)
	ctx := context.Background()

	_, err := wf.Decide(ctx, 1, 42, "defer", "")
	assert.Equal(t, attendance.ValidationError("INVALID_ACTION"), err)

	_, err = wf.Decide(ctx, 999, 42, attendance.ActionApprove, "")
	assert.ErrorIs(t, err, attendance.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	store := inmem.New()
	store.AddAssignment(1, 10, 2)
	store.AddAssignment(2, 10, 2)
	ctx := context.Background()
	wf := newWorkflow(store)

	r1, err := wf.Create(ctx, 1, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-08",
		Changes: []attendance.ChangeInput{seedChange(5, models.StatusPresent)},
	})
	require.NoError(t, err)
	_, err = wf.Create(ctx, 2, attendance.CreateRequestInput{
		ClassID: 10, SectionID: 2, Date: "2026-03-09",
		Changes: []attendance.ChangeInput{seedChange(6, models.StatusPresent)},
	})
	require.NoError(t, err)
	_, err = wf.Decide(ctx, r1.ID, 42, attendance.ActionReject, "")
	require.NoError(t, err)

	mine, err := wf.List(ctx, attendance.RequestFilter{TeacherID: 1})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, r1.ID, mine[0].ID)

	pending, err := wf.List(ctx, attendance.RequestFilter{Status: models.RequestPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(2), pending[0].TeacherID)

	_, err = wf.List(ctx, attendance.RequestFilter{Status: "open"})
	assert.Equal(t, attendance.ValidationError("INVALID_STATUS"), err)
}
