package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/config"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
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
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testAuthHandler(db *gorm.DB) *auth.AuthHandler {
	return auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
}

// authedCtx mimics a request that passed AuthMiddleware.
func authedCtx(userID uint) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestGenerateSlug(t *testing.T) {
	slug, err := generateSlug("Familia Castillo")
	if err != nil {
		t.Fatalf("generateSlug returned error: %v", err)
	}
	if !strings.HasPrefix(slug, "familia-castillo-") {
		t.Errorf("expected prefix familia-castillo-, got %q", slug)
	}
	if len(slug) != len("familia-castillo-")+6 {
		t.Errorf("expected 6 hex chars of suffix, got %q", slug)
	}

	other, _ := generateSlug("Familia Castillo")
	if other == slug {
		t.Error("expected distinct suffixes for repeated names")
	}

	accented, _ := generateSlug("Núñez & Gómez")
	if !strings.HasPrefix(accented, "nunez-gomez-") {
		t.Errorf("expected accents folded, got %q", accented)
	}

	empty, _ := generateSlug("!!!")
	if !strings.HasPrefix(empty, "invitado-") {
		t.Errorf("expected fallback base for unusable names, got %q", empty)
	}
}
