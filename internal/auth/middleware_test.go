package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/invitarte/invitarte-api/internal/config"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMiddleware(t *testing.T) (*AuthHandler, *gorm.DB, http.Handler) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.APIKey{})

	handler := NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
	protected := handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(UserIDKey).(uint); !ok {
			t.Error("expected user ID on context")
		}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, db, protected
}

func TestAuthMiddlewareJWT(t *testing.T) {
	handler, db, protected := setupMiddleware(t)

	user := models.User{GoogleID: "g-1"}
	db.Create(&user)

	t.Run("ValidCookie", func(t *testing.T) {
		token, _ := handler.GenerateToken(user.ID)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("NoCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthMiddlewareAPIKey(t *testing.T) {
	_, db, protected := setupMiddleware(t)

	user := models.User{GoogleID: "g-1"}
	db.Create(&user)

	t.Run("ValidKey", func(t *testing.T) {
		db.Create(&models.APIKey{UserID: user.ID, Key: "valid-key", Name: "ci"})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-KEY", "valid-key")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		var key models.APIKey
		db.Where("key = ?", "valid-key").First(&key)
		if key.LastUsedAt == nil {
			t.Error("expected last_used_at to be stamped")
		}
	})

	t.Run("ExpiredKey", func(t *testing.T) {
		expired := time.Now().Add(-time.Hour)
		db.Create(&models.APIKey{UserID: user.ID, Key: "expired-key", Name: "old", ExpiresAt: &expired})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-KEY", "expired-key")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
