package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

const (
	auditEntityEditRequest = "attendance_edit_request"
	auditActionApproved    = "attendance_edit_request.approved"
	auditActionRejected    = "attendance_edit_request.rejected"
)

func (s *Store) CreateRequest(ctx context.Context, req *models.AttendanceEditRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *Store) GetRequest(ctx context.Context, id uint) (*models.AttendanceEditRequest, error) {
	var req models.AttendanceEditRequest
	err := s.db.WithContext(ctx).
		Preload("Changes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, attendance.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) ListRequests(ctx context.Context, f attendance.RequestFilter) ([]models.AttendanceEditRequest, error) {
	tx := s.db.WithContext(ctx).Model(&models.AttendanceEditRequest{})
	if f.TeacherID != 0 {
		tx = tx.Where("teacher_id = ?", f.TeacherID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.ClassID != 0 {
		tx = tx.Where("class_id = ?", f.ClassID)
	}
	if f.SectionID != 0 {
		tx = tx.Where("section_id = ?", f.SectionID)
	}
	if f.DateFrom != "" {
		tx = tx.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		tx = tx.Where("date <= ?", f.DateTo)
	}

	var rows []models.AttendanceEditRequest
	err := tx.
		Preload("Changes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// RejectRequest flips the request to rejected and appends the audit entry.
// No attendance record is touched. The status UPDATE is guarded on pending;
// zero rows affected means another reviewer got there first.
func (s *Store) RejectRequest(ctx context.Context, req *models.AttendanceEditRequest, reviewerID uint, note string) (*models.AttendanceEditRequest, error) {
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AttendanceEditRequest{}).
			Where("id = ? AND status = ?", req.ID, models.RequestPending).
			Updates(map[string]any{
				"status":      models.RequestRejected,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
				"review_note": note,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return attendance.ErrAlreadyDecided
		}
		return tx.Create(&models.AuditLogEntry{
			Action:   auditActionRejected,
			Entity:   auditEntityEditRequest,
			EntityID: req.ID,
			ActorID:  reviewerID,
			Meta:     mustJSON(map[string]any{"reference": req.Reference, "note": note}),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, req.ID)
}

// ApproveRequest is the approval unit of work: guard the pending status,
// upsert one record per change item with the original requester as marker,
// and append one audit entry holding ordered before/after snapshots. Any
// failure rolls the whole transaction back and the request stays pending.
func (s *Store) ApproveRequest(ctx context.Context, req *models.AttendanceEditRequest, reviewerID uint, note string) (*models.AttendanceEditRequest, error) {
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AttendanceEditRequest{}).
			Where("id = ? AND status = ?", req.ID, models.RequestPending).
			Updates(map[string]any{
				"status":      models.RequestApproved,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
				"review_note": note,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return attendance.ErrAlreadyDecided
		}

		before := make([]map[string]any, 0, len(req.Changes))
		after := make([]map[string]any, 0, len(req.Changes))
		for _, ch := range req.Changes {
			var cur models.AttendanceRecord
			err := tx.Where("student_id = ? AND date = ? AND lecture = ?", ch.StudentID, req.Date, req.Lecture).
				Take(&cur).Error
			switch {
			case err == nil:
				before = append(before, recordSnapshot(&cur))
			case errors.Is(err, gorm.ErrRecordNotFound):
				before = append(before, nil)
			default:
				return err
			}

			rec := models.AttendanceRecord{
				StudentID: ch.StudentID,
				Date:      req.Date,
				Lecture:   req.Lecture,
				ClassID:   req.ClassID,
				SectionID: req.SectionID,
				Status:    ch.ToStatus,
				Remark:    ch.ToRemark,
				MarkedBy:  req.TeacherID, // provenance stays with the requester
			}
			if err := upsertRecord(tx, &rec); err != nil {
				return err
			}

			var applied models.AttendanceRecord
			if err := tx.Where("student_id = ? AND date = ? AND lecture = ?", ch.StudentID, req.Date, req.Lecture).
				Take(&applied).Error; err != nil {
				return err
			}
			after = append(after, recordSnapshot(&applied))
		}

		return tx.Create(&models.AuditLogEntry{
			Action:   auditActionApproved,
			Entity:   auditEntityEditRequest,
			EntityID: req.ID,
			ActorID:  reviewerID,
			Before:   mustJSON(before),
			After:    mustJSON(after),
			Meta:     mustJSON(map[string]any{"reference": req.Reference, "note": note, "changes": len(req.Changes)}),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, req.ID)
}

func recordSnapshot(rec *models.AttendanceRecord) map[string]any {
	return map[string]any{
		"student_id": rec.StudentID,
		"date":       rec.Date,
		"lecture":    rec.Lecture,
		"status":     rec.Status,
		"remark":     rec.Remark,
		"marked_by":  rec.MarkedBy,
	}
}

// mustJSON marshals plain maps/slices of scalars; failure is impossible for
// the shapes audited here.
func mustJSON(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
