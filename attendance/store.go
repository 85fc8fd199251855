package attendance

import (
	"context"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// RecordQuery addresses one day's records for a class/section. A nil Lecture
// matches every lecture; a pointer to "" matches only whole-day rows.
type RecordQuery struct {
	ClassID   uint
	SectionID uint
	Date      string
	Lecture   *string
}

// RecordStore is the authoritative attendance record set. UpsertRecord must
// be an atomic insert-or-update keyed by (student, date, lecture) — never a
// read-then-write pair — so concurrent markings of the same key converge on
// the last accepted write.
type RecordStore interface {
	UpsertRecord(ctx context.Context, rec *models.AttendanceRecord) error
	FindRecords(ctx context.Context, q RecordQuery) ([]models.AttendanceRecord, error)
	RecordsInRange(ctx context.Context, classID, sectionID uint, from, to string) ([]models.AttendanceRecord, error)
}

// AssignmentStore answers existence checks against the teaching-assignment
// directory.
type AssignmentStore interface {
	AssignmentExists(ctx context.Context, teacherID, classID, sectionID uint) (bool, error)
}

// PolicyPatch is a partial cutoff-policy update; nil fields are left alone.
type PolicyPatch struct {
	CutoffTime *string
	Enabled    *bool
}

// PolicyStore persists cutoff policies. GetOrCreatePolicy must be idempotent
// under concurrent first reads: a duplicate-key conflict means someone else
// created the row, and the surviving row is returned.
type PolicyStore interface {
	GetOrCreatePolicy(ctx context.Context, def models.CutoffPolicy) (models.CutoffPolicy, error)
	UpdatePolicy(ctx context.Context, key string, patch PolicyPatch, updatedBy uint) (models.CutoffPolicy, error)
}

// RequestFilter narrows edit-request listings. Zero values mean "any".
type RequestFilter struct {
	TeacherID uint
	Status    string
	ClassID   uint
	SectionID uint
	DateFrom  string
	DateTo    string
}

// RequestStore persists edit requests and carries out decisions.
//
// ApproveRequest is one unit of work: apply every change item as an upsert
// with the original requester as marker, flip the request to approved with
// reviewer metadata, and append exactly one audit entry whose before/after
// arrays hold one snapshot per change item in request order. If any part
// fails the request must remain pending. Both decision methods must fail
// with ErrAlreadyDecided when the request is no longer pending.
type RequestStore interface {
	CreateRequest(ctx context.Context, req *models.AttendanceEditRequest) error
	GetRequest(ctx context.Context, id uint) (*models.AttendanceEditRequest, error)
	ListRequests(ctx context.Context, f RequestFilter) ([]models.AttendanceEditRequest, error)
	ApproveRequest(ctx context.Context, req *models.AttendanceEditRequest, reviewerID uint, note string) (*models.AttendanceEditRequest, error)
	RejectRequest(ctx context.Context, req *models.AttendanceEditRequest, reviewerID uint, note string) (*models.AttendanceEditRequest, error)
}

// Directory decorates responses with human-readable names. It is a narrow
// view of the externally owned student directory.
type Directory interface {
	StudentNames(ctx context.Context, ids []uint) (map[uint]string, error)
}
