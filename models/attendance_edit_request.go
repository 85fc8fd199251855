package models

import "time"

// Edit request states. Pending is initial; approved and rejected are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// AttendanceEditRequest is one correction batch against a single
// (class, section, date, lecture) scope. Creating it mutates nothing;
// approval applies the change items and rejection leaves records untouched.
// Once decided it is immutable.
type AttendanceEditRequest struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Reference string `json:"reference" gorm:"size:36;not null;uniqueIndex"`
	TeacherID uint   `json:"teacher_id" gorm:"index;not null"`
	ClassID   uint   `json:"class_id" gorm:"index;not null"`
	SectionID uint   `json:"section_id" gorm:"index;not null;default:0"`
	Date      string `json:"date" gorm:"size:10;not null"`
	Lecture   string `json:"lecture" gorm:"size:40;not null;default:''"`
	Reason    string `json:"reason" gorm:"type:text"`
	Status    string `json:"status" gorm:"size:12;not null;default:'pending';index"`

	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	ReviewNote string     `json:"review_note" gorm:"type:text"`

	Changes []AttendanceEditChange `json:"changes" gorm:"foreignKey:RequestID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendanceEditChange is one proposed per-student change within a request.
// Position preserves the order the requester submitted.
type AttendanceEditChange struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	RequestID  uint   `json:"request_id" gorm:"index;not null"`
	Position   int    `json:"position" gorm:"not null"`
	StudentID  uint   `json:"student_id" gorm:"not null"`
	FromStatus string `json:"from_status" gorm:"size:10"` // "" when no prior record
	ToStatus   string `json:"to_status" gorm:"size:10;not null"`
	FromRemark string `json:"from_remark" gorm:"type:text"`
	ToRemark   string `json:"to_remark" gorm:"type:text"`
}
