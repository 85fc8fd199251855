package models

import "time"

// TeachingAssignment is a (teacher, class, section, subject) authorization
// fact. SectionID 0 and Subject "" mean the assignment is not scoped to one.
// Owned by the admin directory surface; the attendance core only reads it.
type TeachingAssignment struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	TeacherID    uint   `json:"teacher_id" gorm:"not null;uniqueIndex:uniq_assignment,priority:1"`
	DepartmentID uint   `json:"department_id" gorm:"not null;default:0"`
	ClassID      uint   `json:"class_id" gorm:"not null;uniqueIndex:uniq_assignment,priority:2"`
	SectionID    uint   `json:"section_id" gorm:"not null;default:0;uniqueIndex:uniq_assignment,priority:3"`
	Subject      string `json:"subject" gorm:"size:60;not null;default:'';uniqueIndex:uniq_assignment,priority:4"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
