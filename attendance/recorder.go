package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// Mark is one student's proposed status within a marking batch.
type Mark struct {
	StudentID uint
	Status    string
	Remark    string
}

// MarkInput is a same-day marking batch for one (class, section, date,
// lecture) scope.
type MarkInput struct {
	ClassID      uint
	SectionID    uint
	DepartmentID uint
	Date         string
	Lecture      string
	Marks        []Mark
}

// RecordView is an attendance record decorated with the student's name.
type RecordView struct {
	models.AttendanceRecord
	StudentName string `json:"student_name,omitempty"`
}

// Recorder is the direct write path used by teachers for same-day marking.
type Recorder struct {
	Records   RecordStore
	Ownership *OwnershipResolver
	Policy    *PolicyService
	Directory Directory

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// MarkAttendance validates the batch, checks ownership and the cutoff, then
// applies each mark as an independent idempotent upsert. Each upsert is
// atomic per student; a failure part-way leaves earlier upserts in place,
// and re-issuing the same batch is safe.
func (r *Recorder) MarkAttendance(ctx context.Context, teacherID uint, in MarkInput) error {
	if len(in.Marks) == 0 {
		return ValidationError("EMPTY_MARKS")
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return ValidationError("INVALID_DATE")
	}
	for _, m := range in.Marks {
		if m.StudentID == 0 {
			return ValidationError("MISSING_STUDENT")
		}
		if !models.ValidStatus(m.Status) {
			return ValidationError("INVALID_STATUS")
		}
	}

	ok, err := r.Ownership.Owns(ctx, teacherID, in.ClassID, in.SectionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAssigned
	}

	pol, err := r.Policy.Get(ctx)
	if err != nil {
		return err
	}
	if !DirectlyEditable(in.Date, r.now(), pol) {
		return ErrLocked
	}

	for _, m := range in.Marks {
		rec := models.AttendanceRecord{
			StudentID:    m.StudentID,
			Date:         in.Date,
			Lecture:      in.Lecture,
			ClassID:      in.ClassID,
			SectionID:    in.SectionID,
			DepartmentID: in.DepartmentID,
			Status:       m.Status,
			Remark:       m.Remark,
			MarkedBy:     teacherID,
		}
		if err := r.Records.UpsertRecord(ctx, &rec); err != nil {
			return err
		}
	}
	return nil
}

// List returns one day's records for a class/section, decorated with student
// names when the directory knows them. Read access is intentionally broader
// than write access; no ownership check here.
func (r *Recorder) List(ctx context.Context, q RecordQuery) ([]RecordView, error) {
	if _, err := time.Parse(DateLayout, q.Date); err != nil {
		return nil, ValidationError("INVALID_DATE")
	}
	recs, err := r.Records.FindRecords(ctx, q)
	if err != nil {
		return nil, err
	}

	var names map[uint]string
	if r.Directory != nil && len(recs) > 0 {
		seen := make(map[uint]struct{}, len(recs))
		ids := make([]uint, 0, len(recs))
		for _, rec := range recs {
			if _, ok := seen[rec.StudentID]; !ok {
				seen[rec.StudentID] = struct{}{}
				ids = append(ids, rec.StudentID)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		// Decoration is best-effort; a directory hiccup must not fail the read.
		names, _ = r.Directory.StudentNames(ctx, ids)
	}

	views := make([]RecordView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, RecordView{AttendanceRecord: rec, StudentName: names[rec.StudentID]})
	}
	return views, nil
}
