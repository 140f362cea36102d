package handlers

import (
	"context"
	"testing"

	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInvitationPage(t *testing.T) {
	db := setupDB(t)
	handler := NewInvitationHandler(db, templates.NewRegistry())
	_, eventA, eventB, group := seedCheckIn(t, db)

	require.NoError(t, db.Create(&models.Design{
		EventID:      eventA.ID,
		TemplateName: "clasica",
		Config:       map[string]any{"palette": "rosa"},
	}).Error)

	t.Run("KnownTemplate", func(t *testing.T) {
		resp, err := handler.HandlePage(context.Background(), &InvitationPageRequest{EventSlug: eventA.Slug})
		require.NoError(t, err)
		assert.Equal(t, "clasica", resp.Body.Page.Template)
		assert.Equal(t, "rosa", resp.Body.Page.Values["palette"], "design config overrides template defaults")
		assert.Equal(t, eventA.Name, resp.Body.Page.Values["title"])
		assert.Nil(t, resp.Body.Group)
	})

	t.Run("PersonalizedWithGroup", func(t *testing.T) {
		resp, err := handler.HandlePage(context.Background(), &InvitationPageRequest{
			EventSlug: eventA.Slug,
			GroupSlug: group.Slug,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Body.Group)
		assert.Equal(t, "Familia Castillo", resp.Body.Group.GroupName)
		assert.Len(t, resp.Body.Group.Members, 4)
	})

	t.Run("GroupSlugFromOtherEventIgnored", func(t *testing.T) {
		resp, err := handler.HandlePage(context.Background(), &InvitationPageRequest{
			EventSlug: eventB.Slug,
			GroupSlug: group.Slug,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Body.Group, "a group slug from another event must not resolve")
	})

	t.Run("UnknownTemplateFallsBack", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Design{}).
			Where("event_id = ?", eventA.ID).
			Update("template_name", "retirada-2019").Error)

		resp, err := handler.HandlePage(context.Background(), &InvitationPageRequest{EventSlug: eventA.Slug})
		require.NoError(t, err, "an unknown template name must never hard-fail")
		assert.Equal(t, "placeholder", resp.Body.Page.Template)
	})

	t.Run("NoDesignAtAll", func(t *testing.T) {
		resp, err := handler.HandlePage(context.Background(), &InvitationPageRequest{EventSlug: eventB.Slug})
		require.NoError(t, err)
		assert.Equal(t, "placeholder", resp.Body.Page.Template)
	})

	t.Run("UnknownEvent", func(t *testing.T) {
		_, err := handler.HandlePage(context.Background(), &InvitationPageRequest{EventSlug: "no-existe"})
		require.Error(t, err)
	})
}
