package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/templates"
	"gorm.io/gorm"
)

type InvitationHandler struct {
	db       *gorm.DB
	registry *templates.Registry
}

func NewInvitationHandler(db *gorm.DB, registry *templates.Registry) *InvitationHandler {
	return &InvitationHandler{db: db, registry: registry}
}

type InvitationPageRequest struct {
	EventSlug string `path:"eventSlug"`
	GroupSlug string `query:"g" doc:"Optional group slug for a personalized page"`
}

type InvitationGroupPayload struct {
	GroupName   string               `json:"group_name"`
	Slug        string               `json:"slug"`
	TotalPasses int                  `json:"total_passes"`
	Status      models.GroupStatus   `json:"status"`
	Members     []models.GuestMember `json:"members"`
}

type InvitationPageResponse struct {
	Body struct {
		EventName string                  `json:"event_name"`
		EventSlug string                  `json:"event_slug"`
		Date      time.Time               `json:"date"`
		Premium   bool                    `json:"premium"`
		Settings  models.SettingsMap      `json:"settings"`
		Page      templates.Page          `json:"page"`
		Group     *InvitationGroupPayload `json:"group"`
	}
}

// HandlePage serves the public invitation page model. No authentication: the
// event slug is the public address. The template name always resolves to a
// renderer; an unset or unknown design renders the placeholder.
func (h *InvitationHandler) HandlePage(ctx context.Context, input *InvitationPageRequest) (*InvitationPageResponse, error) {
	var event models.Event
	if err := h.db.Where("slug = ?", input.EventSlug).First(&event).Error; err != nil {
		return nil, huma.Error404NotFound("Invitación no encontrada")
	}

	templateName := ""
	var config map[string]any
	var design models.Design
	if err := h.db.Where("event_id = ?", event.ID).First(&design).Error; err == nil {
		templateName = design.TemplateName
		config = design.Config
	}

	res := &InvitationPageResponse{}
	res.Body.EventName = event.Name
	res.Body.EventSlug = event.Slug
	res.Body.Date = event.Date
	res.Body.Premium = event.Premium
	res.Body.Settings = event.Settings
	res.Body.Page = h.registry.Resolve(templateName).Render(&event, config)

	if input.GroupSlug != "" {
		var group models.GuestGroup
		err := h.db.Preload("Members").
			Where("event_id = ? AND slug = ?", event.ID, input.GroupSlug).
			First(&group).Error
		if err == nil {
			res.Body.Group = &InvitationGroupPayload{
				GroupName:   group.GroupName,
				Slug:        group.Slug,
				TotalPasses: group.TotalPasses,
				Status:      group.Status,
				Members:     group.Members,
			}
		}
	}

	return res, nil
}
