package models

import "time"

// Student carries the minimum the attendance surface needs: identity for
// record keys and a name for response decoration. The full student directory
// lives outside this module.
type Student struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	StudentCode string `json:"student_code" gorm:"size:20;not null;uniqueIndex"`
	FirstName   string `json:"first_name" gorm:"size:50;not null"`
	LastName    string `json:"last_name" gorm:"size:50"`
	ClassID     uint   `json:"class_id" gorm:"index;not null"`
	SectionID   uint   `json:"section_id" gorm:"index;not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name, tolerating a missing last name.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
