package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/models"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// QRHandler renders the printable QR code for a group. The encoded payload
// is the public invitation URL carrying the group slug, the same string the
// check-in scanner reads back.
type QRHandler struct {
	db      *gorm.DB
	baseURL string
}

func NewQRHandler(db *gorm.DB, baseURL string) *QRHandler {
	return &QRHandler{db: db, baseURL: baseURL}
}

func (h *QRHandler) HandleGroupQR(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	eventID, err := strconv.ParseUint(chi.URLParam(r, "eventID"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}
	groupID, err := strconv.ParseUint(chi.URLParam(r, "groupID"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := h.db.First(&event, uint(eventID)).Error; err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	if event.OwnerID != userID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	var group models.GuestGroup
	if err := h.db.First(&group, uint(groupID)).Error; err != nil {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	}
	if group.EventID != event.ID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	url := fmt.Sprintf("%s/i/%s?g=%s", h.baseURL, event.Slug, group.Slug)
	png, err := qrcode.Encode(url, qrcode.Medium, 512)
	if err != nil {
		http.Error(w, "Failed to render QR", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", group.Slug+".png"))
	w.Write(png)
}
