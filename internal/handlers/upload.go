package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/invitarte/invitarte-api/internal/assets"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/gorm"
)

const maxUploadBytes = 64 << 20

var validAssetTypes = map[models.AssetType]bool{
	models.AssetHero:    true,
	models.AssetGallery: true,
	models.AssetVideo:   true,
	models.AssetMusic:   true,
}

// UploadHandler takes multipart uploads on a plain chi route; streaming file
// parts through a JSON schema buys nothing here. It sits behind
// AuthMiddleware, which puts the organizer ID on the context.
type UploadHandler struct {
	db        *gorm.DB
	processor *assets.Processor
}

func NewUploadHandler(db *gorm.DB, processor *assets.Processor) *UploadHandler {
	return &UploadHandler{db: db, processor: processor}
}

func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	var event models.Event
	if err := h.db.First(&event, uint(eventID)).Error; err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	if event.OwnerID != userID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	assetType := models.AssetType(r.FormValue("type"))
	if !validAssetTypes[assetType] {
		http.Error(w, "Invalid asset type", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	stored, err := h.processor.Store(assetType, header.Header.Get("Content-Type"), file)
	if err != nil {
		http.Error(w, "Failed to store file", http.StatusUnprocessableEntity)
		return
	}

	asset := models.Asset{
		EventID:     event.ID,
		Type:        assetType,
		ObjectName:  stored.ObjectName,
		ContentType: stored.ContentType,
		Size:        stored.Size,
	}
	if err := h.db.Create(&asset).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":           asset.ID,
		"object_name":  asset.ObjectName,
		"content_type": asset.ContentType,
		"size":         asset.Size,
		"path":         "/uploads/" + asset.ObjectName,
	})
}
