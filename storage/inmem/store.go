// Package inmem is an in-memory implementation of the attendance store
// contracts. Tests run the business and handler layers against it; it mirrors
// the semantics the GORM store gets from the database (key uniqueness,
// conflict-as-success upserts, pending-only decision guard).
package inmem

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

type recordKey struct {
	StudentID uint
	Date      string
	Lecture   string
}

type assignmentKey struct {
	TeacherID uint
	ClassID   uint
	SectionID uint
}

type Store struct {
	mu          sync.Mutex
	records     map[recordKey]models.AttendanceRecord
	assignments map[assignmentKey]struct{}
	policies    map[string]models.CutoffPolicy
	requests    map[uint]*models.AttendanceEditRequest
	audits      []models.AuditLogEntry
	students    map[uint]string
	modules     map[string]bool
	nextID      uint
}

func New() *Store {
	return &Store{
		records:     make(map[recordKey]models.AttendanceRecord),
		assignments: make(map[assignmentKey]struct{}),
		policies:    make(map[string]models.CutoffPolicy),
		requests:    make(map[uint]*models.AttendanceEditRequest),
		students:    make(map[uint]string),
		modules:     make(map[string]bool),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AddAssignment seeds a teaching assignment.
func (s *Store) AddAssignment(teacherID, classID, sectionID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignmentKey{teacherID, classID, sectionID}] = struct{}{}
}

// AddStudent seeds a directory name.
func (s *Store) AddStudent(id uint, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[id] = name
}

// Record returns the stored row for a key, if any.
func (s *Store) Record(studentID uint, date, lecture string) (models.AttendanceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordKey{studentID, date, lecture}]
	return rec, ok
}

// Audits returns a copy of the audit log in append order.
func (s *Store) Audits() []models.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLogEntry, len(s.audits))
	copy(out, s.audits)
	return out
}

func (s *Store) UpsertRecord(ctx context.Context, rec *models.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{rec.StudentID, rec.Date, rec.Lecture}
	now := time.Now()
	if cur, ok := s.records[key]; ok {
		rec.ID = cur.ID
		rec.CreatedAt = cur.CreatedAt
	} else {
		rec.ID = s.id()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	s.records[key] = *rec
	return nil
}

func (s *Store) FindRecords(ctx context.Context, q attendance.RecordQuery) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []models.AttendanceRecord
	for _, rec := range s.records {
		if rec.ClassID != q.ClassID || rec.SectionID != q.SectionID || rec.Date != q.Date {
			continue
		}
		if q.Lecture != nil && rec.Lecture != *q.Lecture {
			continue
		}
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StudentID != rows[j].StudentID {
			return rows[i].StudentID < rows[j].StudentID
		}
		return rows[i].Lecture < rows[j].Lecture
	})
	return rows, nil
}

func (s *Store) RecordsInRange(ctx context.Context, classID, sectionID uint, from, to string) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []models.AttendanceRecord
	for _, rec := range s.records {
		if rec.ClassID != classID || rec.SectionID != sectionID {
			continue
		}
		if rec.Date < from || rec.Date > to {
			continue
		}
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].StudentID < rows[j].StudentID
	})
	return rows, nil
}

func (s *Store) AssignmentExists(ctx context.Context, teacherID, classID, sectionID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assignments[assignmentKey{teacherID, classID, sectionID}]
	return ok, nil
}

func (s *Store) GetOrCreatePolicy(ctx context.Context, def models.CutoffPolicy) (models.CutoffPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pol, ok := s.policies[def.Key]; ok {
		return pol, nil
	}
	def.ID = s.id()
	def.CreatedAt = time.Now()
	def.UpdatedAt = def.CreatedAt
	s.policies[def.Key] = def
	return def, nil
}

func (s *Store) UpdatePolicy(ctx context.Context, key string, patch attendance.PolicyPatch, updatedBy uint) (models.CutoffPolicy, error) {
	if _, err := s.GetOrCreatePolicy(ctx, models.CutoffPolicy{
		Key:        key,
		CutoffTime: models.DefaultCutoffTime,
		Enabled:    true,
	}); err != nil {
		return models.CutoffPolicy{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pol := s.policies[key]
	if patch.CutoffTime != nil {
		pol.CutoffTime = *patch.CutoffTime
	}
	if patch.Enabled != nil {
		pol.Enabled = *patch.Enabled
	}
	pol.UpdatedBy = &updatedBy
	pol.UpdatedAt = time.Now()
	s.policies[key] = pol
	return pol, nil
}

func (s *Store) CreateRequest(ctx context.Context, req *models.AttendanceEditRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = s.id()
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	for i := range req.Changes {
		req.Changes[i].ID = s.id()
		req.Changes[i].RequestID = req.ID
	}
	cp := cloneRequest(req)
	s.requests[req.ID] = &cp
	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uint) (*models.AttendanceEditRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, attendance.ErrNotFound
	}
	cp := cloneRequest(req)
	return &cp, nil
}

func (s *Store) ListRequests(ctx context.Context, f attendance.RequestFilter) ([]models.AttendanceEditRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []models.AttendanceEditRequest
	for _, req := range s.requests {
		if f.TeacherID != 0 && req.TeacherID != f.TeacherID {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.ClassID != 0 && req.ClassID != f.ClassID {
			continue
		}
		if f.SectionID != 0 && req.SectionID != f.SectionID {
			continue
		}
		if f.DateFrom != "" && req.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && req.Date > f.DateTo {
			continue
		}
		rows = append(rows, cloneRequest(req))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func (s *Store) RejectRequest(ctx context.Context, req *models.AttendanceEditRequest, reviewerID uint, note string) (*models.AttendanceEditRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[req.ID]
	if !ok {
		return nil, attendance.ErrNotFound
	}
	if stored.Status != models.RequestPending {
		return nil, attendance.ErrAlreadyDecided
	}
	now := time.Now()
	stored.Status = models.RequestRejected
	stored.ReviewedBy = &reviewerID
	stored.ReviewedAt = &now
	stored.ReviewNote = note
	stored.UpdatedAt = now
	s.audits = append(s.audits, models.AuditLogEntry{
		ID:        s.id(),
		Action:    "attendance_edit_request.rejected",
		Entity:    "attendance_edit_request",
		EntityID:  stored.ID,
		ActorID:   reviewerID,
		Meta:      mustJSON(map[string]any{"reference": stored.Reference, "note": note}),
		CreatedAt: now,
	})
	cp := cloneRequest(stored)
	return &cp, nil
}

func (s *Store) ApproveRequest(ctx context.Context, req *models.AttendanceEditRequest, reviewerID uint, note string) (*models.AttendanceEditRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[req.ID]
	if !ok {
		return nil, attendance.ErrNotFound
	}
	if stored.Status != models.RequestPending {
		return nil, attendance.ErrAlreadyDecided
	}

	now := time.Now()
	before := make([]map[string]any, 0, len(stored.Changes))
	after := make([]map[string]any, 0, len(stored.Changes))
	for _, ch := range stored.Changes {
		key := recordKey{ch.StudentID, stored.Date, stored.Lecture}
		if cur, ok := s.records[key]; ok {
			before = append(before, snapshot(cur))
		} else {
			before = append(before, nil)
		}

		rec := models.AttendanceRecord{
			StudentID: ch.StudentID,
			Date:      stored.Date,
			Lecture:   stored.Lecture,
			ClassID:   stored.ClassID,
			SectionID: stored.SectionID,
			Status:    ch.ToStatus,
			Remark:    ch.ToRemark,
			MarkedBy:  stored.TeacherID,
		}
		if cur, ok := s.records[key]; ok {
			rec.ID = cur.ID
			rec.CreatedAt = cur.CreatedAt
		} else {
			rec.ID = s.id()
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		s.records[key] = rec
		after = append(after, snapshot(rec))
	}

	stored.Status = models.RequestApproved
	stored.ReviewedBy = &reviewerID
	stored.ReviewedAt = &now
	stored.ReviewNote = note
	stored.UpdatedAt = now
	s.audits = append(s.audits, models.AuditLogEntry{
		ID:        s.id(),
		Action:    "attendance_edit_request.approved",
		Entity:    "attendance_edit_request",
		EntityID:  stored.ID,
		ActorID:   reviewerID,
		Before:    mustJSON(before),
		After:     mustJSON(after),
		Meta:      mustJSON(map[string]any{"reference": stored.Reference, "note": note, "changes": len(stored.Changes)}),
		CreatedAt: now,
	})
	cp := cloneRequest(stored)
	return &cp, nil
}

func (s *Store) StudentNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make(map[uint]string, len(ids))
	for _, id := range ids {
		if name, ok := s.students[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}

func (s *Store) ModuleEnabled(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled, ok := s.modules[key]; ok {
		return enabled, nil
	}
	return true, nil
}

func (s *Store) ListModules(ctx context.Context) ([]models.ModuleFlag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.modules))
	for key := range s.modules {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([]models.ModuleFlag, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, models.ModuleFlag{Key: key, Enabled: s.modules[key]})
	}
	return rows, nil
}

func (s *Store) SetModule(ctx context.Context, key string, enabled bool) (models.ModuleFlag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[key] = enabled
	return models.ModuleFlag{Key: key, Enabled: enabled}, nil
}

func cloneRequest(req *models.AttendanceEditRequest) models.AttendanceEditRequest {
	cp := *req
	cp.Changes = make([]models.AttendanceEditChange, len(req.Changes))
	copy(cp.Changes, req.Changes)
	return cp
}

func snapshot(rec models.AttendanceRecord) map[string]any {
	return map[string]any{
		"student_id": rec.StudentID,
		"date":       rec.Date,
		"lecture":    rec.Lecture,
		"status":     rec.Status,
		"remark":     rec.Remark,
		"marked_by":  rec.MarkedBy,
	}
}

func mustJSON(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
