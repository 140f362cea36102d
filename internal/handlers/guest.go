package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/gorm"
)

type GuestHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewGuestHandler(db *gorm.DB, authHandler *auth.AuthHandler) *GuestHandler {
	return &GuestHandler{db: db, authHandler: authHandler}
}

type NewMemberFields struct {
	Name        string `json:"name" doc:"Full name of the guest" required:"true" minLength:"1"`
	MenuChoice  string `json:"menu_choice,omitempty"`
	DrinkChoice string `json:"drink_choice,omitempty"`
	Allergies   string `json:"allergies,omitempty"`
}

type CreateGroupRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	Body    struct {
		GroupName    string            `json:"group_name" doc:"Name of the invited party" required:"true" minLength:"1"`
		TotalPasses  int               `json:"total_passes" doc:"Admission passes allotted to the party" required:"true" minimum:"1"`
		ContactName  string            `json:"contact_name,omitempty"`
		ContactPhone string            `json:"contact_phone,omitempty"`
		ContactEmail string            `json:"contact_email,omitempty"`
		Members      []NewMemberFields `json:"members,omitempty" doc:"Named members, may be added later"`
	}
}

type GroupResponse struct {
	Body models.GuestGroup
}

func (h *GuestHandler) HandleCreateGroup(ctx context.Context, input *CreateGroupRequest) (*GroupResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	slug, err := generateSlug(input.Body.GroupName)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate slug")
	}

	group := models.GuestGroup{
		EventID:      event.ID,
		GroupName:    input.Body.GroupName,
		Slug:         slug,
		TotalPasses:  input.Body.TotalPasses,
		Status:       models.GroupStatusPending,
		ContactName:  input.Body.ContactName,
		ContactPhone: input.Body.ContactPhone,
		ContactEmail: input.Body.ContactEmail,
	}
	for _, m := range input.Body.Members {
		group.Members = append(group.Members, models.GuestMember{
			Name:        m.Name,
			MenuChoice:  m.MenuChoice,
			DrinkChoice: m.DrinkChoice,
			Allergies:   m.Allergies,
		})
	}

	if err := h.db.Create(&group).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create group")
	}

	return &GroupResponse{Body: group}, nil
}

type ListGroupsRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
}

type ListGroupsResponse struct {
	Body []models.GuestGroup
}

func (h *GuestHandler) HandleListGroups(ctx context.Context, input *ListGroupsRequest) (*ListGroupsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	var groups []models.GuestGroup
	if err := h.db.Preload("Members").Where("event_id = ?", event.ID).Order("group_name").Find(&groups).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list groups")
	}

	return &ListGroupsResponse{Body: groups}, nil
}

// eventGroup loads a group and enforces that it belongs to the given event.
func (h *GuestHandler) eventGroup(eventID, groupID uint) (*models.GuestGroup, error) {
	return eventGroup(h.db, eventID, groupID)
}

func eventGroup(db *gorm.DB, eventID, groupID uint) (*models.GuestGroup, error) {
	var group models.GuestGroup
	if err := db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Group not found")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}
	if group.EventID != eventID {
		return nil, huma.Error403Forbidden("Access denied: group belongs to another event")
	}
	return &group, nil
}

type GetGroupRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	GroupID uint `path:"groupID"`
}

func (h *GuestHandler) HandleGetGroup(ctx context.Context, input *GetGroupRequest) (*GroupResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := h.eventGroup(event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}
	if err := h.db.Preload("Members").First(group, group.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	return &GroupResponse{Body: *group}, nil
}

type UpdateGroupRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	GroupID uint `path:"groupID"`
	Body    struct {
		GroupName    *string             `json:"group_name,omitempty" minLength:"1"`
		TotalPasses  *int                `json:"total_passes,omitempty" minimum:"1"`
		Status       *models.GroupStatus `json:"status,omitempty" enum:"pending,confirmed,partial,declined"`
		ContactName  *string             `json:"contact_name,omitempty"`
		ContactPhone *string             `json:"contact_phone,omitempty"`
		ContactEmail *string             `json:"contact_email,omitempty"`
	}
}

func (h *GuestHandler) HandleUpdateGroup(ctx context.Context, input *UpdateGroupRequest) (*GroupResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := h.eventGroup(event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}

	if input.Body.GroupName != nil {
		group.GroupName = *input.Body.GroupName
	}
	if input.Body.TotalPasses != nil {
		group.TotalPasses = *input.Body.TotalPasses
	}
	if input.Body.Status != nil {
		group.Status = *input.Body.Status
	}
	if input.Body.ContactName != nil {
		group.ContactName = *input.Body.ContactName
	}
	if input.Body.ContactPhone != nil {
		group.ContactPhone = *input.Body.ContactPhone
	}
	if input.Body.ContactEmail != nil {
		group.ContactEmail = *input.Body.ContactEmail
	}

	if err := h.db.Save(group).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update group")
	}

	return &GroupResponse{Body: *group}, nil
}

type DeleteGroupRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	GroupID uint `path:"groupID"`
}

func (h *GuestHandler) HandleDeleteGroup(ctx context.Context, input *DeleteGroupRequest) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := h.eventGroup(event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guest_group_id = ?", group.ID).Delete(&models.CheckInLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("guest_group_id = ?", group.ID).Delete(&models.GuestMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete group")
	}

	return nil, nil
}

type AddMemberRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	GroupID uint `path:"groupID"`
	Body    NewMemberFields
}

type MemberResponse struct {
	Body models.GuestMember
}

func (h *GuestHandler) HandleAddMember(ctx context.Context, input *AddMemberRequest) (*MemberResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := h.eventGroup(event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}

	member := models.GuestMember{
		GuestGroupID: group.ID,
		Name:         input.Body.Name,
		MenuChoice:   input.Body.MenuChoice,
		DrinkChoice:  input.Body.DrinkChoice,
		Allergies:    input.Body.Allergies,
	}
	if err := h.db.Create(&member).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create member")
	}

	return &MemberResponse{Body: member}, nil
}

type UpdateMemberRequest struct {
	auth.AuthInput
	EventID  uint `path:"eventID"`
	GroupID  uint `path:"groupID"`
	MemberID uint `path:"memberID"`
	Body     struct {
		Name        *string `json:"name,omitempty" minLength:"1"`
		MenuChoice  *string `json:"menu_choice,omitempty"`
		DrinkChoice *string `json:"drink_choice,omitempty"`
		Allergies   *string `json:"allergies,omitempty"`
		IsAttending *bool   `json:"is_attending,omitempty"`
	}
}

func (h *GuestHandler) HandleUpdateMember(ctx context.Context, input *UpdateMemberRequest) (*MemberResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := h.eventGroup(event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}

	var member models.GuestMember
	if err := h.db.Where("id = ? AND guest_group_id = ?", input.MemberID, group.ID).First(&member).Error; err != nil {
		return nil, huma.Error404NotFound("Member not found")
	}

	if input.Body.Name != nil {
		member.Name = *input.Body.Name
	}
	if input.Body.MenuChoice != nil {
		member.MenuChoice = *input.Body.MenuChoice
	}
	if input.Body.DrinkChoice != nil {
		member.DrinkChoice = *input.Body.DrinkChoice
	}
	if input.Body.Allergies != nil {
		member.Allergies = *input.Body.Allergies
	}
	if input.Body.IsAttending != nil {
		member.IsAttending = input.Body.IsAttending
	}

	if err := h.db.Save(&member).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update member")
	}

	return &MemberResponse{Body: member}, nil
}

type DeleteMemberRequest struct {
	auth.AuthInput
	EventID  uint `path:"eventID"`
	GroupID  uint `path:"groupID"`
	MemberID uint `path:"memberID"`
}

func (h *GuestHandler) HandleDeleteMember(ctx context.Context, input *DeleteMemberRequest) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	group, err := h.eventGroup(event.ID, input.GroupID)
	if err != nil {
		return nil, err
	}

	if err := h.db.Where("id = ? AND guest_group_id = ?", input.MemberID, group.ID).Delete(&models.GuestMember{}).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete member")
	}

	return nil, nil
}
