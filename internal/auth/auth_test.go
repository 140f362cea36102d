package auth

import (
	"context"
	"testing"

	"github.com/invitarte/invitarte-api/internal/config"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestHandleMe(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&models.User{})

	user := models.User{
		GoogleID: "123456",
		Name:     "testuser",
		Email:    "test@example.com",
		Avatar:   "avatar_url",
	}
	db.Create(&user)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db)

	t.Run("Authenticated", func(t *testing.T) {
		token, _ := handler.GenerateToken(user.ID)
		input := &MeInput{
			AuthInput: AuthInput{Cookie: "auth_token=" + token},
		}
		resp, err := handler.HandleMe(context.Background(), input)
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}

		if resp.Body.Name != user.Name {
			t.Errorf("expected name %s, got %s", user.Name, resp.Body.Name)
		}
		if resp.Body.Email != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, resp.Body.Email)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		input := &MeInput{}
		_, err := handler.HandleMe(context.Background(), input)
		if err == nil {
			t.Fatal("expected error for unauthenticated request, got nil")
		}
	})

	t.Run("TamperedToken", func(t *testing.T) {
		otherCfg := &config.Config{JWTSecret: "other-secret"}
		otherHandler := NewAuthHandler(otherCfg, db)
		token, _ := otherHandler.GenerateToken(user.ID)

		input := &MeInput{
			AuthInput: AuthInput{Cookie: "auth_token=" + token},
		}
		_, err := handler.HandleMe(context.Background(), input)
		if err == nil {
			t.Fatal("expected error for token signed with a different secret")
		}
	})

	t.Run("ContextUserID", func(t *testing.T) {
		// AuthMiddleware puts the ID on the context for plain routes; the
		// huma path must honor it without a cookie.
		ctx := context.WithValue(context.Background(), UserIDKey, user.ID)
		resp, err := handler.HandleMe(ctx, &MeInput{})
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}
		if resp.Body.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, resp.Body.ID)
		}
	})
}
