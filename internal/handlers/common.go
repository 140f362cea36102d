package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/gorm"
)

// ownedEvent loads an event and enforces that it belongs to the caller.
// Missing events are 404; someone else's events are 403, never silently
// resolved.
func ownedEvent(db *gorm.DB, eventID, userID uint) (*models.Event, error) {
	var event models.Event
	if err := db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}
	if event.OwnerID != userID {
		return nil, huma.Error403Forbidden("Access denied: event belongs to another organizer")
	}
	return &event, nil
}

// generateSlug builds a URL-safe slug from a display name plus a random
// suffix, e.g. "familia-castillo-3f9a2c". The suffix keeps slugs unguessable;
// they are the only identifier printed on QR codes.
func generateSlug(name string) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	base := slugify(name)
	if base == "" {
		base = "invitado"
	}
	return base + "-" + hex.EncodeToString(suffix), nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(normalizeRune(r))
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func normalizeRune(r rune) rune {
	switch r {
	case 'á', 'à', 'ä', 'â':
		return 'a'
	case 'é', 'è', 'ë', 'ê':
		return 'e'
	case 'í', 'ì', 'ï', 'î':
		return 'i'
	case 'ó', 'ò', 'ö', 'ô':
		return 'o'
	case 'ú', 'ù', 'ü', 'û':
		return 'u'
	case 'ñ':
		return 'n'
	}
	return r
}
