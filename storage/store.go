package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// Store persists the attendance core with GORM/Postgres. It satisfies every
// store interface in the attendance package; uniqueness lives in the schema
// (composite unique index on the record key, unique policy key) and
// conflicts on insert are handled as upserts, never as read-then-write.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// upsertRecord inserts or overwrites the row for (student, date, lecture).
// Shared by the direct marking path and the approval transaction.
func upsertRecord(tx *gorm.DB, rec *models.AttendanceRecord) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}, {Name: "lecture"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "remark", "marked_by", "class_id", "section_id", "department_id", "updated_at",
		}),
	}).Create(rec).Error
}

func (s *Store) UpsertRecord(ctx context.Context, rec *models.AttendanceRecord) error {
	return upsertRecord(s.db.WithContext(ctx), rec)
}

func (s *Store) FindRecords(ctx context.Context, q attendance.RecordQuery) ([]models.AttendanceRecord, error) {
	tx := s.db.WithContext(ctx).
		Where("class_id = ? AND section_id = ? AND date = ?", q.ClassID, q.SectionID, q.Date)
	if q.Lecture != nil {
		tx = tx.Where("lecture = ?", *q.Lecture)
	}
	var rows []models.AttendanceRecord
	err := tx.Order("student_id ASC, lecture ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) RecordsInRange(ctx context.Context, classID, sectionID uint, from, to string) ([]models.AttendanceRecord, error) {
	var rows []models.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("class_id = ? AND section_id = ? AND date >= ? AND date <= ?", classID, sectionID, from, to).
		Order("date ASC, student_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *Store) AssignmentExists(ctx context.Context, teacherID, classID, sectionID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.TeachingAssignment{}).
		Where("teacher_id = ? AND class_id = ? AND section_id = ?", teacherID, classID, sectionID).
		Count(&n).Error
	return n > 0, err
}

// GetOrCreatePolicy inserts the default row if the key has none yet. Racing
// first readers both insert; the loser's duplicate-key conflict is success
// and the follow-up read returns whichever row survived.
func (s *Store) GetOrCreatePolicy(ctx context.Context, def models.CutoffPolicy) (models.CutoffPolicy, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&def).Error
	if err != nil {
		return models.CutoffPolicy{}, err
	}
	var pol models.CutoffPolicy
	err = s.db.WithContext(ctx).Where("key = ?", def.Key).Take(&pol).Error
	return pol, err
}

func (s *Store) UpdatePolicy(ctx context.Context, key string, patch attendance.PolicyPatch, updatedBy uint) (models.CutoffPolicy, error) {
	pol, err := s.GetOrCreatePolicy(ctx, models.CutoffPolicy{
		Key:        key,
		CutoffTime: models.DefaultCutoffTime,
		Enabled:    true,
	})
	if err != nil {
		return models.CutoffPolicy{}, err
	}

	updates := map[string]any{"updated_by": updatedBy}
	if patch.CutoffTime != nil {
		updates["cutoff_time"] = *patch.CutoffTime
	}
	if patch.Enabled != nil {
		updates["enabled"] = *patch.Enabled
	}
	if err := s.db.WithContext(ctx).Model(&models.CutoffPolicy{}).
		Where("id = ?", pol.ID).Updates(updates).Error; err != nil {
		return models.CutoffPolicy{}, err
	}

	err = s.db.WithContext(ctx).Where("key = ?", key).Take(&pol).Error
	return pol, err
}

// ModuleEnabled reports whether the named module is switched on. A missing
// flag row means enabled.
func (s *Store) ModuleEnabled(ctx context.Context, key string) (bool, error) {
	var flag models.ModuleFlag
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&flag).Error
	if err == gorm.ErrRecordNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return flag.Enabled, nil
}

// ListModules returns every module flag row.
func (s *Store) ListModules(ctx context.Context) ([]models.ModuleFlag, error) {
	var rows []models.ModuleFlag
	err := s.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, err
}

// SetModule upserts the flag row for key.
func (s *Store) SetModule(ctx context.Context, key string, enabled bool) (models.ModuleFlag, error) {
	flag := models.ModuleFlag{Key: key, Enabled: enabled}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
		}).
		Create(&flag).Error
	if err != nil {
		return models.ModuleFlag{}, err
	}
	err = s.db.WithContext(ctx).Where("key = ?", key).Take(&flag).Error
	return flag, err
}

// StudentNames resolves display names for the given student ids.
func (s *Store) StudentNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []models.Student
	if err := s.db.WithContext(ctx).
		Select("id", "first_name", "last_name").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, st := range rows {
		names[st.ID] = st.FullName()
	}
	return names, nil
}
