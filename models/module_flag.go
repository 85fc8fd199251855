package models

import "time"

// ModuleStudentAttendance gates the whole attendance surface.
const ModuleStudentAttendance = "student_attendance"

// ModuleFlag is a per-module enable switch. A missing row means enabled.
type ModuleFlag struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Key     string `json:"key" gorm:"size:40;not null;uniqueIndex"`
	Enabled bool   `json:"enabled" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
