package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/config"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// Connect opens the database and migrates the schema. The composite unique
// index on attendance records and the unique policy key are what the upsert
// paths rely on; they come from the model tags here.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.TeachingAssignment{},
		&models.AttendanceRecord{},
		&models.AttendanceEditRequest{},
		&models.AttendanceEditChange{},
		&models.CutoffPolicy{},
		&models.AuditLogEntry{},
		&models.ModuleFlag{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
