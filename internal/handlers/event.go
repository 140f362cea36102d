package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/templates"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	registry    *templates.Registry
}

func NewEventHandler(db *gorm.DB, authHandler *auth.AuthHandler, registry *templates.Registry) *EventHandler {
	return &EventHandler{db: db, authHandler: authHandler, registry: registry}
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Name string    `json:"name" doc:"Display name of the event" required:"true" minLength:"1"`
		Date time.Time `json:"date" doc:"Date of the celebration" required:"true"`
	}
}

type EventResponse struct {
	Body models.Event
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*EventResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	slug, err := generateSlug(input.Body.Name)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate slug")
	}

	event := models.Event{
		OwnerID:  userID,
		Name:     input.Body.Name,
		Slug:     slug,
		Date:     input.Body.Date,
		Settings: models.SettingsMap{},
	}

	if err := h.db.Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event")
	}

	return &EventResponse{Body: event}, nil
}

type ListEventsRequest struct {
	auth.AuthInput
}

type ListEventsResponse struct {
	Body []models.Event
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := h.db.Where("owner_id = ?", userID).Order("date").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list events")
	}

	return &ListEventsResponse{Body: events}, nil
}

type GetEventRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
}

type GetEventResponse struct {
	Body struct {
		models.Event
		GroupCount  int64 `json:"group_count"`
		MemberCount int64 `json:"member_count"`
		TableCount  int64 `json:"table_count"`
	}
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*GetEventResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	var design models.Design
	if err := h.db.Where("event_id = ?", event.ID).First(&design).Error; err == nil {
		event.Design = &design
	}

	res := &GetEventResponse{}
	res.Body.Event = *event
	h.db.Model(&models.GuestGroup{}).Where("event_id = ?", event.ID).Count(&res.Body.GroupCount)
	h.db.Model(&models.GuestMember{}).
		Joins("JOIN guest_groups ON guest_groups.id = guest_members.guest_group_id").
		Where("guest_groups.event_id = ?", event.ID).
		Count(&res.Body.MemberCount)
	h.db.Model(&models.Table{}).Where("event_id = ?", event.ID).Count(&res.Body.TableCount)

	return res, nil
}

type UpdateEventSettingsRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	Body    struct {
		Settings map[string]string `json:"settings" doc:"Keys to merge into the event settings" required:"true"`
	}
}

func (h *EventHandler) HandleUpdateSettings(ctx context.Context, input *UpdateEventSettingsRequest) (*EventResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	// Merge key by key; existing keys not named in the request survive.
	if event.Settings == nil {
		event.Settings = models.SettingsMap{}
	}
	for k, v := range input.Body.Settings {
		event.Settings[k] = v
	}

	if err := h.db.Save(event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update settings")
	}

	return &EventResponse{Body: *event}, nil
}

type SetDesignRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	Body    struct {
		TemplateName string         `json:"template_name" doc:"Template slug; unknown slugs render as placeholder" required:"true"`
		Config       map[string]any `json:"config" doc:"Content values consumed by the template"`
	}
}

type SetDesignResponse struct {
	Body struct {
		Design   models.Design `json:"design"`
		Resolved string        `json:"resolved" doc:"Template the registry actually resolves this name to"`
	}
}

func (h *EventHandler) HandleSetDesign(ctx context.Context, input *SetDesignRequest) (*SetDesignResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	var design models.Design
	if err := h.db.FirstOrInit(&design, models.Design{EventID: event.ID}).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	design.TemplateName = input.Body.TemplateName
	design.Config = input.Body.Config

	if err := h.db.Save(&design).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save design")
	}

	res := &SetDesignResponse{}
	res.Body.Design = design
	res.Body.Resolved = h.registry.Resolve(design.TemplateName).Slug()
	return res, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
}

func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	// Cascade by hand inside one transaction: sqlite does not always have
	// foreign_keys enabled, and the log/member rows must never outlive the
	// event.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var groupIDs []uint
		if err := tx.Model(&models.GuestGroup{}).Where("event_id = ?", event.ID).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("guest_group_id IN ?", groupIDs).Delete(&models.CheckInLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("guest_group_id IN ?", groupIDs).Delete(&models.GuestMember{}).Error; err != nil {
				return err
			}
		}
		for _, m := range []any{&models.GuestGroup{}, &models.Table{}, &models.Design{}, &models.Asset{}, &models.Subscription{}} {
			if err := tx.Where("event_id = ?", event.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete event")
	}

	return nil, nil
}
