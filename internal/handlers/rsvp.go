package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/notifier"
	"gorm.io/gorm"
)

type RSVPHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewRSVPHandler(db *gorm.DB, notifier notifier.Notifier) *RSVPHandler {
	return &RSVPHandler{db: db, notifier: notifier}
}

type RSVPMemberAnswer struct {
	MemberID    uint   `json:"member_id" required:"true"`
	IsAttending bool   `json:"is_attending"`
	MenuChoice  string `json:"menu_choice,omitempty"`
	DrinkChoice string `json:"drink_choice,omitempty"`
	Allergies   string `json:"allergies,omitempty"`
}

type SubmitRSVPRequest struct {
	GroupSlug string `path:"groupSlug"`
	Body      struct {
		Members []RSVPMemberAnswer `json:"members" required:"true" minItems:"1"`
	}
}

type SubmitRSVPResponse struct {
	Body struct {
		Status models.GroupStatus `json:"status"`
	}
}

// HandleSubmit records the party's answer. Every referenced member must
// belong to the group; otherwise nothing is written. The group status becomes
// confirmed unconditionally, even when every member declines — "confirmed"
// means "the party answered", not "the party attends".
func (h *RSVPHandler) HandleSubmit(ctx context.Context, input *SubmitRSVPRequest) (*SubmitRSVPResponse, error) {
	var group models.GuestGroup
	if err := h.db.Where("slug = ?", input.GroupSlug).First(&group).Error; err != nil {
		return nil, huma.Error404NotFound("Invitación no encontrada")
	}

	memberIDs := make([]uint, 0, len(input.Body.Members))
	for _, a := range input.Body.Members {
		memberIDs = append(memberIDs, a.MemberID)
	}

	var known int64
	if err := h.db.Model(&models.GuestMember{}).
		Where("guest_group_id = ? AND id IN ?", group.ID, memberIDs).
		Count(&known).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if known != int64(len(uniqueIDs(memberIDs))) {
		return nil, huma.Error404NotFound("Member not found in this group")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range input.Body.Members {
			updates := map[string]any{
				"is_attending": a.IsAttending,
				"menu_choice":  a.MenuChoice,
				"drink_choice": a.DrinkChoice,
				"allergies":    a.Allergies,
			}
			if err := tx.Model(&models.GuestMember{}).
				Where("id = ? AND guest_group_id = ?", a.MemberID, group.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Model(&group).Update("status", models.GroupStatusConfirmed).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to save RSVP")
	}

	if h.notifier != nil {
		var event models.Event
		if err := h.db.First(&event, group.EventID).Error; err == nil {
			h.db.Preload("Members").First(&group, group.ID)
			h.notifier.NotifyRSVP(event, group)
		}
	}

	res := &SubmitRSVPResponse{}
	res.Body.Status = models.GroupStatusConfirmed
	return res, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
