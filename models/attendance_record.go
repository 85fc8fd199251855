package models

import "time"

// Attendance statuses. The set is closed; anything else is rejected at the edge.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusLeave   = "leave"
)

// ValidStatus reports whether s is one of the supported attendance statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeave:
		return true
	}
	return false
}

// AttendanceRecord is one row per (student, date, lecture). Lecture "" means
// the whole day; it participates in the unique key, so it is NOT NULL with an
// empty default rather than nullable.
type AttendanceRecord struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	StudentID    uint   `json:"student_id" gorm:"not null;uniqueIndex:uniq_attendance_key,priority:1"`
	Date         string `json:"date" gorm:"size:10;not null;uniqueIndex:uniq_attendance_key,priority:2"` // YYYY-MM-DD
	Lecture      string `json:"lecture" gorm:"size:40;not null;default:'';uniqueIndex:uniq_attendance_key,priority:3"`
	ClassID      uint   `json:"class_id" gorm:"index;not null"`
	SectionID    uint   `json:"section_id" gorm:"index;not null;default:0"`
	DepartmentID uint   `json:"department_id" gorm:"not null;default:0"`
	Status       string `json:"status" gorm:"size:10;not null"`
	Remark       string `json:"remark" gorm:"type:text"`
	MarkedBy     uint   `json:"marked_by" gorm:"not null"` // teachers.id

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
