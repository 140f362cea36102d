package database

import (
	"log"

	"github.com/invitarte/invitarte-api/internal/config"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Design{},
		&models.GuestGroup{},
		&models.GuestMember{},
		&models.Table{},
		&models.CheckInLog{},
		&models.Setting{},
		&models.Subscription{},
		&models.Asset{},
		&models.APIKey{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
