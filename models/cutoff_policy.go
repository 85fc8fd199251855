package models

import "time"

const (
	// PolicyStudentAttendance keys the singleton cutoff policy for daily
	// student attendance.
	PolicyStudentAttendance = "student_attendance"

	// DefaultCutoffTime applies when the policy row is created lazily.
	DefaultCutoffTime = "22:00"
)

// CutoffPolicy is a singleton per key holding the time of day after which
// same-day attendance may no longer be edited directly. Created lazily with
// the default on first read; mutated only through the staff settings surface.
type CutoffPolicy struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Key        string `json:"key" gorm:"size:40;not null;uniqueIndex"`
	CutoffTime string `json:"cutoff_time" gorm:"size:5;not null;default:'22:00'"` // HH:MM
	Enabled    bool   `json:"enabled" gorm:"not null;default:true"`
	UpdatedBy  *uint  `json:"updated_by"` // users.id of the last editor

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
