package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/models"
	"gorm.io/gorm"
)

type TableHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewTableHandler(db *gorm.DB, authHandler *auth.AuthHandler) *TableHandler {
	return &TableHandler{db: db, authHandler: authHandler}
}

type CreateTableRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	Body    struct {
		Name     string `json:"name" required:"true" minLength:"1"`
		Capacity int    `json:"capacity" doc:"Advisory seat count; assignment never hard-fails on it" required:"true" minimum:"1"`
	}
}

type TableResponse struct {
	Body models.Table
}

func (h *TableHandler) HandleCreateTable(ctx context.Context, input *CreateTableRequest) (*TableResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	table := models.Table{
		EventID:  event.ID,
		Name:     input.Body.Name,
		Capacity: input.Body.Capacity,
	}
	if err := h.db.Create(&table).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create table")
	}

	return &TableResponse{Body: table}, nil
}

type ListTablesRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
}

type TableWithOccupancy struct {
	models.Table
	Occupied int64 `json:"occupied"`
}

type ListTablesResponse struct {
	Body []TableWithOccupancy
}

func (h *TableHandler) HandleListTables(ctx context.Context, input *ListTablesRequest) (*ListTablesResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	var tables []models.Table
	if err := h.db.Where("event_id = ?", event.ID).Order("name").Find(&tables).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list tables")
	}

	res := &ListTablesResponse{Body: []TableWithOccupancy{}}
	for _, t := range tables {
		var occupied int64
		h.db.Model(&models.GuestMember{}).Where("table_id = ?", t.ID).Count(&occupied)
		res.Body = append(res.Body, TableWithOccupancy{Table: t, Occupied: occupied})
	}
	return res, nil
}

type UpdateTableRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	TableID uint `path:"tableID"`
	Body    struct {
		Name     *string `json:"name,omitempty" minLength:"1"`
		Capacity *int    `json:"capacity,omitempty" minimum:"1"`
	}
}

func (h *TableHandler) HandleUpdateTable(ctx context.Context, input *UpdateTableRequest) (*TableResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	table, err := h.eventTable(event.ID, input.TableID)
	if err != nil {
		return nil, err
	}

	if input.Body.Name != nil {
		table.Name = *input.Body.Name
	}
	if input.Body.Capacity != nil {
		table.Capacity = *input.Body.Capacity
	}

	if err := h.db.Save(table).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update table")
	}

	return &TableResponse{Body: *table}, nil
}

type DeleteTableRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	TableID uint `path:"tableID"`
}

func (h *TableHandler) HandleDeleteTable(ctx context.Context, input *DeleteTableRequest) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	table, err := h.eventTable(event.ID, input.TableID)
	if err != nil {
		return nil, err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		// Unseat everyone first so no member keeps a dangling table_id.
		if err := tx.Model(&models.GuestMember{}).Where("table_id = ?", table.ID).
			Update("table_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(table).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete table")
	}

	return nil, nil
}

func (h *TableHandler) eventTable(eventID, tableID uint) (*models.Table, error) {
	var table models.Table
	if err := h.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Table not found")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}
	if table.EventID != eventID {
		return nil, huma.Error403Forbidden("Access denied: table belongs to another event")
	}
	return &table, nil
}

type AssignMemberRequest struct {
	auth.AuthInput
	EventID  uint `path:"eventID"`
	MemberID uint `path:"memberID"`
	Body     struct {
		TableID *uint `json:"table_id" doc:"Table to seat the member at, null to unseat"`
	}
}

type AssignMemberResponse struct {
	Body models.GuestMember
}

// HandleAssignMember seats or unseats one member. The only hard rule is
// tenant scope: the member's group and the target table must belong to the
// same event. Capacity is advisory and not checked here. Unseating an
// already unseated member is a no-op success.
func (h *TableHandler) HandleAssignMember(ctx context.Context, input *AssignMemberRequest) (*AssignMemberResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	var member models.GuestMember
	if err := h.db.First(&member, input.MemberID).Error; err != nil {
		return nil, huma.Error404NotFound("Member not found")
	}
	if _, err := eventGroup(h.db, event.ID, member.GuestGroupID); err != nil {
		return nil, err
	}

	if input.Body.TableID != nil {
		if _, err := h.eventTable(event.ID, *input.Body.TableID); err != nil {
			return nil, err
		}
	}

	if err := h.db.Model(&member).Update("table_id", input.Body.TableID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to assign table")
	}
	member.TableID = input.Body.TableID

	return &AssignMemberResponse{Body: member}, nil
}
