// Seeds the first admin account. Run once against a fresh database:
//
//	go run ./scripts
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/config"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/database"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "changeme123")

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		fmt.Println("admin user already exists:", username)
		os.Exit(0)
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("query users: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	u := models.User{
		Username:            username,
		PasswordHash:        string(hash),
		Role:                models.RoleAdmin,
		Name:                "Administrator",
		Enabled:             true,
		ForcePasswordChange: true,
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("insert admin: %v", err)
	}

	fmt.Println("admin user created:", username)
	fmt.Println("initial password:", password, "(change on first login)")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
