package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/templates"
)

func TestHandleCreateAndGetEvent(t *testing.T) {
	db := setupDB(t)
	handler := NewEventHandler(db, testAuthHandler(db), templates.NewRegistry())

	owner := models.User{GoogleID: "g-1"}
	db.Create(&owner)
	ctx := authedCtx(owner.ID)

	input := &CreateEventRequest{}
	input.Body.Name = "Boda Ana y Luis"
	input.Body.Date = time.Date(2027, 3, 20, 17, 0, 0, 0, time.UTC)

	resp, err := handler.HandleCreateEvent(ctx, input)
	if err != nil {
		t.Fatalf("HandleCreateEvent returned error: %v", err)
	}
	if resp.Body.OwnerID != owner.ID {
		t.Errorf("expected owner %d, got %d", owner.ID, resp.Body.OwnerID)
	}
	if resp.Body.Slug == "" {
		t.Error("expected generated slug")
	}

	// Another organizer must not read it.
	other := models.User{GoogleID: "g-2"}
	db.Create(&other)
	_, err = handler.HandleGetEvent(authedCtx(other.ID), &GetEventRequest{EventID: resp.Body.ID})
	if err == nil {
		t.Fatal("expected error for foreign organizer")
	}
	if se, ok := err.(huma.StatusError); !ok || se.GetStatus() != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestHandleUpdateSettingsMerges(t *testing.T) {
	db := setupDB(t)
	handler := NewEventHandler(db, testAuthHandler(db), templates.NewRegistry())
	owner, eventA, _, _ := seedCheckIn(t, db)
	ctx := authedCtx(owner.ID)

	first := &UpdateEventSettingsRequest{EventID: eventA.ID}
	first.Body.Settings = map[string]string{"venue": "Hacienda Los Olivos", "dress_code": "formal"}
	if _, err := handler.HandleUpdateSettings(ctx, first); err != nil {
		t.Fatalf("first update returned error: %v", err)
	}

	second := &UpdateEventSettingsRequest{EventID: eventA.ID}
	second.Body.Settings = map[string]string{"dress_code": "etiqueta"}
	resp, err := handler.HandleUpdateSettings(ctx, second)
	if err != nil {
		t.Fatalf("second update returned error: %v", err)
	}

	if resp.Body.Settings["venue"] != "Hacienda Los Olivos" {
		t.Error("merge must preserve keys not named in the request")
	}
	if resp.Body.Settings["dress_code"] != "etiqueta" {
		t.Errorf("expected overwritten key, got %q", resp.Body.Settings["dress_code"])
	}
}

func TestHandleDeleteEventCascades(t *testing.T) {
	db := setupDB(t)
	handler := NewEventHandler(db, testAuthHandler(db), templates.NewRegistry())
	owner, eventA, _, group := seedCheckIn(t, db)
	ctx := authedCtx(owner.ID)

	db.Create(&models.Table{EventID: eventA.ID, Name: "Mesa 1", Capacity: 8})
	db.Create(&models.Design{EventID: eventA.ID, TemplateName: "clasica"})
	db.Create(&models.CheckInLog{GuestGroupID: group.ID, Type: models.CheckInEntry})
	db.Create(&models.Subscription{EventID: eventA.ID, UserID: owner.ID, Tier: "premium", GatewayRef: "ref-casc-1"})

	if _, err := handler.HandleDeleteEvent(ctx, &DeleteEventRequest{EventID: eventA.ID}); err != nil {
		t.Fatalf("HandleDeleteEvent returned error: %v", err)
	}

	var groups, tables, designs, members, logs, subs int64
	db.Model(&models.GuestGroup{}).Where("event_id = ?", eventA.ID).Count(&groups)
	db.Model(&models.Table{}).Where("event_id = ?", eventA.ID).Count(&tables)
	db.Model(&models.Design{}).Where("event_id = ?", eventA.ID).Count(&designs)
	db.Model(&models.GuestMember{}).Where("guest_group_id = ?", group.ID).Count(&members)
	db.Model(&models.CheckInLog{}).Where("guest_group_id = ?", group.ID).Count(&logs)
	db.Model(&models.Subscription{}).Where("event_id = ?", eventA.ID).Count(&subs)

	if groups+tables+designs+members+logs+subs != 0 {
		t.Errorf("expected full cascade, got groups=%d tables=%d designs=%d members=%d logs=%d subs=%d",
			groups, tables, designs, members, logs, subs)
	}
}
