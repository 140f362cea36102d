package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/invitarte/invitarte-api/internal/auth"
)

type Handlers struct {
	Auth       *auth.AuthHandler
	Event      *EventHandler
	Guest      *GuestHandler
	CheckIn    *CheckInHandler
	RSVP       *RSVPHandler
	Table      *TableHandler
	Invitation *InvitationHandler
	Billing    *BillingHandler
	APIKey     *APIKeyHandler
	Upload     *UploadHandler
	QR         *QRHandler
	UploadDir  string
}

func RegisterRoutes(r *chi.Mux, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Invitarte API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
	}
	api := humachi.New(r, config)

	cookieAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/auth/google/login", h.Auth.HandleLogin)
	r.Get("/auth/google/callback", h.Auth.HandleCallback)

	huma.Get(api, "/i/{eventSlug}", h.Invitation.HandlePage)
	huma.Post(api, "/rsvp/{groupSlug}", h.RSVP.HandleSubmit)
	huma.Post(api, "/billing/notify", h.Billing.HandleNotify)

	// Organizer routes
	huma.Get(api, "/me", h.Auth.HandleMe, cookieAuth)

	huma.Post(api, "/events", h.Event.HandleCreateEvent, cookieAuth)
	huma.Get(api, "/events", h.Event.HandleListEvents, cookieAuth)
	huma.Get(api, "/events/{eventID}", h.Event.HandleGetEvent, cookieAuth)
	huma.Patch(api, "/events/{eventID}/settings", h.Event.HandleUpdateSettings, cookieAuth)
	huma.Put(api, "/events/{eventID}/design", h.Event.HandleSetDesign, cookieAuth)
	huma.Delete(api, "/events/{eventID}", h.Event.HandleDeleteEvent, cookieAuth)

	huma.Post(api, "/events/{eventID}/groups", h.Guest.HandleCreateGroup, cookieAuth)
	huma.Get(api, "/events/{eventID}/groups", h.Guest.HandleListGroups, cookieAuth)
	huma.Get(api, "/events/{eventID}/groups/{groupID}", h.Guest.HandleGetGroup, cookieAuth)
	huma.Patch(api, "/events/{eventID}/groups/{groupID}", h.Guest.HandleUpdateGroup, cookieAuth)
	huma.Delete(api, "/events/{eventID}/groups/{groupID}", h.Guest.HandleDeleteGroup, cookieAuth)
	huma.Post(api, "/events/{eventID}/groups/{groupID}/members", h.Guest.HandleAddMember, cookieAuth)
	huma.Patch(api, "/events/{eventID}/groups/{groupID}/members/{memberID}", h.Guest.HandleUpdateMember, cookieAuth)
	huma.Delete(api, "/events/{eventID}/groups/{groupID}/members/{memberID}", h.Guest.HandleDeleteMember, cookieAuth)

	huma.Post(api, "/events/{eventID}/checkin/validate", h.CheckIn.HandleValidate, cookieAuth)
	huma.Post(api, "/events/{eventID}/groups/{groupID}/checkin", h.CheckIn.HandleToggle, cookieAuth)
	huma.Get(api, "/events/{eventID}/groups/{groupID}/logs", h.CheckIn.HandleListLogs, cookieAuth)

	huma.Post(api, "/events/{eventID}/tables", h.Table.HandleCreateTable, cookieAuth)
	huma.Get(api, "/events/{eventID}/tables", h.Table.HandleListTables, cookieAuth)
	huma.Patch(api, "/events/{eventID}/tables/{tableID}", h.Table.HandleUpdateTable, cookieAuth)
	huma.Delete(api, "/events/{eventID}/tables/{tableID}", h.Table.HandleDeleteTable, cookieAuth)
	huma.Put(api, "/events/{eventID}/members/{memberID}/table", h.Table.HandleAssignMember, cookieAuth)

	huma.Post(api, "/events/{eventID}/subscribe", h.Billing.HandleSubscribe, cookieAuth)

	huma.Post(api, "/apikeys", h.APIKey.HandleCreate, cookieAuth)
	huma.Get(api, "/apikeys", h.APIKey.HandleList, cookieAuth)
	huma.Delete(api, "/apikeys/{id}", h.APIKey.HandleDelete, cookieAuth)

	// Binary routes stay on plain chi behind the auth middleware.
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.AuthMiddleware)
		r.Post("/events/{eventID}/assets", h.Upload.HandleUpload)
		r.Get("/events/{eventID}/groups/{groupID}/qr.png", h.QR.HandleGroupQR)
	})

	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)
}
