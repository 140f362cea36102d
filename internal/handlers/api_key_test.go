package handlers

import (
	"strings"
	"testing"

	"github.com/invitarte/invitarte-api/internal/models"
)

func TestHandleListMasksKeys(t *testing.T) {
	db := setupDB(t)
	handler := NewAPIKeyHandler(db, testAuthHandler(db))

	owner := models.User{GoogleID: "g-1", Name: "Organizadora"}
	db.Create(&owner)
	other := models.User{GoogleID: "g-2", Name: "Otra"}
	db.Create(&other)
	ctx := authedCtx(owner.ID)

	input := &CreateAPIKeyInput{}
	input.Body.Name = "scanner"
	created, err := handler.HandleCreate(ctx, input)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	if len(created.Body.Key) != 64 {
		t.Fatalf("expected full 64-char key on create, got %d chars", len(created.Body.Key))
	}

	db.Create(&models.APIKey{UserID: other.ID, Key: "ffffffffffffffff", Name: "ajena"})

	resp, err := handler.HandleList(ctx, &ListAPIKeysInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(resp.Body) != 1 {
		t.Fatalf("expected only the owner's key, got %d", len(resp.Body))
	}

	masked := resp.Body[0].Key
	want := "..." + created.Body.Key[len(created.Body.Key)-4:]
	if masked != want {
		t.Errorf("expected masked key %q, got %q", want, masked)
	}
	if strings.Contains(masked, created.Body.Key[:8]) {
		t.Errorf("list must not expose the key prefix, got %q", masked)
	}
}
