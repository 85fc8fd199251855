package models

import "time"

// Account roles. Staff and admin may review edit requests and change the
// cutoff policy; teachers mark attendance for their assigned classes.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleTeacher = "teacher"
)

// ValidRole reports whether r is a known account role.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleTeacher:
		return true
	}
	return false
}

// ReviewerRole reports whether r may decide edit requests.
func ReviewerRole(r string) bool { return r == RoleAdmin || r == RoleStaff }

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"size:20;not null"`
	Name         string `json:"name" gorm:"size:120"`
	TeacherID    *uint  `json:"teacher_id" gorm:"index"` // teachers.id when the account belongs to a teacher
	Enabled      bool   `json:"enabled" gorm:"not null;default:true"`

	// Set when an admin resets the password; cleared on first change.
	ForcePasswordChange bool `json:"force_password_change" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
