package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/config"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/database"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/handlers"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, db, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
