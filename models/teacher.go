package models

import "time"

// Teacher is the narrow directory row accounts and assignments link to.
type Teacher struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TeacherCode string `json:"teacher_code" gorm:"size:20;not null;uniqueIndex"`
	FirstName   string `json:"first_name" gorm:"size:50;not null"`
	LastName    string `json:"last_name" gorm:"size:50"`
	Email       string `json:"email" gorm:"size:80"`
	Phone       string `json:"phone" gorm:"size:15"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
