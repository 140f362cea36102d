package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/gorm"
)

// Operator-facing messages shown on the scanning device.
const (
	MsgEntryRegistered = "Ingreso registrado"
	MsgExitRegistered  = "Salida registrada"
	MsgInvalidCode     = "Código no válido para este evento"
)

const recentLogCount = 5

type CheckInHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCheckInHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CheckInHandler {
	return &CheckInHandler{db: db, authHandler: authHandler}
}

type ValidateRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	Body    struct {
		Slug string `json:"slug" doc:"Group slug read from the QR code" required:"true" minLength:"1"`
	}
}

type CheckInMemberPayload struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	IsAttending *bool  `json:"is_attending"`
	MenuChoice  string `json:"menu_choice"`
	TableName   string `json:"table_name"`
}

type CheckInLogPayload struct {
	Type     models.CheckInType `json:"type"`
	LoggedAt time.Time          `json:"logged_at"`
}

type CheckInGroupPayload struct {
	ID          uint                   `json:"id"`
	GroupName   string                 `json:"group_name"`
	Slug        string                 `json:"slug"`
	TotalPasses int                    `json:"total_passes"`
	Status      models.GroupStatus     `json:"status"`
	IsCheckedIn bool                   `json:"is_checked_in"`
	Members     []CheckInMemberPayload `json:"members"`
	RecentLogs  []CheckInLogPayload    `json:"recent_logs"`
}

type ValidateResponse struct {
	Status int
	Body   struct {
		Success bool                 `json:"success"`
		Message string               `json:"message,omitempty"`
		Group   *CheckInGroupPayload `json:"group,omitempty"`
	}
}

// HandleValidate resolves a scanned QR slug within the event. The lookup is
// strictly event-scoped: a slug that exists under a different event yields
// the same not-found answer as one that exists nowhere. Read-only.
func (h *CheckInHandler) HandleValidate(ctx context.Context, input *ValidateRequest) (*ValidateResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	res := &ValidateResponse{}

	var group models.GuestGroup
	err = h.db.Preload("Members").
		Where("event_id = ? AND slug = ?", event.ID, input.Body.Slug).
		First(&group).Error
	if err != nil {
		res.Status = http.StatusNotFound
		res.Body.Success = false
		res.Body.Message = MsgInvalidCode
		return res, nil
	}

	payload, err := h.groupPayload(&group)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	res.Status = http.StatusOK
	res.Body.Success = true
	res.Body.Group = payload
	return res, nil
}

func (h *CheckInHandler) groupPayload(group *models.GuestGroup) (*CheckInGroupPayload, error) {
	payload := &CheckInGroupPayload{
		ID:          group.ID,
		GroupName:   group.GroupName,
		Slug:        group.Slug,
		TotalPasses: group.TotalPasses,
		Status:      group.Status,
		IsCheckedIn: group.IsCheckedIn,
		Members:     []CheckInMemberPayload{},
		RecentLogs:  []CheckInLogPayload{},
	}

	tableNames := map[uint]string{}
	for _, m := range group.Members {
		name := "Sin mesa"
		if m.TableID != nil {
			cached, ok := tableNames[*m.TableID]
			if !ok {
				var table models.Table
				if err := h.db.First(&table, *m.TableID).Error; err == nil {
					cached = table.Name
				}
				tableNames[*m.TableID] = cached
			}
			if cached != "" {
				name = cached
			}
		}
		payload.Members = append(payload.Members, CheckInMemberPayload{
			ID:          m.ID,
			Name:        m.Name,
			IsAttending: m.IsAttending,
			MenuChoice:  m.MenuChoice,
			TableName:   name,
		})
	}

	var logs []models.CheckInLog
	if err := h.db.Where("guest_group_id = ?", group.ID).
		Order("logged_at DESC, id DESC").
		Limit(recentLogCount).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	for _, l := range logs {
		payload.RecentLogs = append(payload.RecentLogs, CheckInLogPayload{Type: l.Type, LoggedAt: l.LoggedAt})
	}

	return payload, nil
}

type ToggleRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	GroupID uint `path:"groupID"`
}

type ToggleResponse struct {
	Body struct {
		Success     bool   `json:"success"`
		IsCheckedIn bool   `json:"is_checked_in"`
		Message     string `json:"message"`
	}
}

// HandleToggle flips the group between checked-in and checked-out. The log
// append and the flag flip commit in one transaction so the denormalized
// flag can never drift from the log history. Timestamps are server time.
func (h *CheckInHandler) HandleToggle(ctx context.Context, input *ToggleRequest) (*ToggleResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := eventGroup(h.db, event.ID, input.GroupID); err != nil {
		return nil, err
	}

	var checkedIn bool
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var group models.GuestGroup
		if err := tx.First(&group, input.GroupID).Error; err != nil {
			return err
		}

		logType := models.CheckInEntry
		if group.IsCheckedIn {
			logType = models.CheckInExit
		}

		entry := models.CheckInLog{
			GuestGroupID: group.ID,
			Type:         logType,
			LoggedAt:     time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		group.IsCheckedIn = logType == models.CheckInEntry
		checkedIn = group.IsCheckedIn
		return tx.Model(&group).Update("is_checked_in", group.IsCheckedIn).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to register check-in")
	}

	res := &ToggleResponse{}
	res.Body.Success = true
	res.Body.IsCheckedIn = checkedIn
	if checkedIn {
		res.Body.Message = MsgEntryRegistered
	} else {
		res.Body.Message = MsgExitRegistered
	}
	return res, nil
}

type ListLogsRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	GroupID uint `path:"groupID"`
}

type ListLogsResponse struct {
	Body []CheckInLogPayload
}

func (h *CheckInHandler) HandleListLogs(ctx context.Context, input *ListLogsRequest) (*ListLogsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := eventGroup(h.db, event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}

	var logs []models.CheckInLog
	if err := h.db.Where("guest_group_id = ?", group.ID).Order("logged_at DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list logs")
	}

	res := &ListLogsResponse{Body: []CheckInLogPayload{}}
	for _, l := range logs {
		res.Body = append(res.Body, CheckInLogPayload{Type: l.Type, LoggedAt: l.LoggedAt})
	}
	return res, nil
}
