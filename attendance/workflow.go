package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// Decision actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ChangeInput is one proposed per-student change. The from side is whatever
// the requester saw; the authoritative before-snapshot is captured at
// approval time from the live record.
type ChangeInput struct {
	StudentID  uint
	FromStatus string
	ToStatus   string
	FromRemark string
	ToRemark   string
}

// CreateRequestInput is a correction proposal for one
// (class, section, date, lecture) scope. Every change item shares that scope.
type CreateRequestInput struct {
	ClassID   uint
	SectionID uint
	Date      string
	Lecture   string
	Reason    string
	Changes   []ChangeInput
}

// Workflow is the correction path used when direct marking is disallowed.
type Workflow struct {
	Requests  RequestStore
	Ownership *OwnershipResolver

	// NewReference mints request reference numbers; nil means a random UUID.
	NewReference func() string
}

func (w *Workflow) reference() string {
	if w.NewReference != nil {
		return w.NewReference()
	}
	return uuid.NewString()
}

// Create persists a pending request. Entries without a student or with an
// unknown target status are dropped; an empty remainder is a validation
// failure. No attendance record is touched here — creation is purely a
// proposal.
func (w *Workflow) Create(ctx context.Context, teacherID uint, in CreateRequestInput) (*models.AttendanceEditRequest, error) {
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return nil, ValidationError("INVALID_DATE")
	}

	var changes []models.AttendanceEditChange
	for _, ch := range in.Changes {
		if ch.StudentID == 0 || !models.ValidStatus(ch.ToStatus) {
			continue
		}
		changes = append(changes, models.AttendanceEditChange{
			Position:   len(changes),
			StudentID:  ch.StudentID,
			FromStatus: ch.FromStatus,
			ToStatus:   ch.ToStatus,
			FromRemark: ch.FromRemark,
			ToRemark:   ch.ToRemark,
		})
	}
	if len(changes) == 0 {
		return nil, ValidationError("EMPTY_CHANGES")
	}

	ok, err := w.Ownership.Owns(ctx, teacherID, in.ClassID, in.SectionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAssigned
	}

	req := &models.AttendanceEditRequest{
		Reference: w.reference(),
		TeacherID: teacherID,
		ClassID:   in.ClassID,
		SectionID: in.SectionID,
		Date:      in.Date,
		Lecture:   in.Lecture,
		Reason:    in.Reason,
		Status:    models.RequestPending,
		Changes:   changes,
	}
	if err := w.Requests.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// List returns requests matching the filter, newest first.
func (w *Workflow) List(ctx context.Context, f RequestFilter) ([]models.AttendanceEditRequest, error) {
	if f.Status != "" {
		switch f.Status {
		case models.RequestPending, models.RequestApproved, models.RequestRejected:
		default:
			return nil, ValidationError("INVALID_STATUS")
		}
	}
	return w.Requests.ListRequests(ctx, f)
}

// Get returns one request with its change items.
func (w *Workflow) Get(ctx context.Context, id uint) (*models.AttendanceEditRequest, error) {
	return w.Requests.GetRequest(ctx, id)
}

// Decide approves or rejects a pending request exactly once. The store
// enforces the pending-only guard transactionally; the pre-check here just
// gives a clean error without starting the unit of work.
func (w *Workflow) Decide(ctx context.Context, requestID, reviewerID uint, action, note string) (*models.AttendanceEditRequest, error) {
	switch action {
	case ActionApprove, ActionReject:
	default:
		return nil, ValidationError("INVALID_ACTION")
	}

	req, err := w.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestPending {
		return nil, ErrAlreadyDecided
	}

	if action == ActionReject {
		return w.Requests.RejectRequest(ctx, req, reviewerID, note)
	}
	return w.Requests.ApproveRequest(ctx, req, reviewerID, note)
}
