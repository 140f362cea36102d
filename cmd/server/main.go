package main

import (
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/invitarte/invitarte-api/internal/assets"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/config"
	"github.com/invitarte/invitarte-api/internal/database"
	"github.com/invitarte/invitarte-api/internal/handlers"
	"github.com/invitarte/invitarte-api/internal/logger"
	"github.com/invitarte/invitarte-api/internal/notifier"
	"github.com/invitarte/invitarte-api/internal/payment"
	"github.com/invitarte/invitarte-api/internal/settings"
	"github.com/invitarte/invitarte-api/internal/templates"
	"go.uber.org/zap"
)

func main() {
	log := logger.WithComponent("server")

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Load site settings from the key-value table; bad values fail startup.
	site, err := settings.Load(db)
	if err != nil {
		log.Fatal("invalid site settings", zap.Error(err))
	}

	// Ops notifier (optional)
	var opsNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Warn("discord notifier not initialized", zap.Error(err))
		} else {
			opsNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordOpsChannel)
		}
	}

	processor, err := assets.NewProcessor(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	registry := templates.NewRegistry()
	gateway := payment.NewHTTPGateway(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	authHandler := auth.NewAuthHandler(cfg, db)

	h := handlers.Handlers{
		Auth:       authHandler,
		Event:      handlers.NewEventHandler(db, authHandler, registry),
		Guest:      handlers.NewGuestHandler(db, authHandler),
		CheckIn:    handlers.NewCheckInHandler(db, authHandler),
		RSVP:       handlers.NewRSVPHandler(db, opsNotifier),
		Table:      handlers.NewTableHandler(db, authHandler),
		Invitation: handlers.NewInvitationHandler(db, registry),
		Billing:    handlers.NewBillingHandler(db, authHandler, gateway, site, opsNotifier, cfg.PublicBaseURL+"/billing/notify"),
		APIKey:     handlers.NewAPIKeyHandler(db, authHandler),
		Upload:     handlers.NewUploadHandler(db, processor),
		QR:         handlers.NewQRHandler(db, cfg.PublicBaseURL),
		UploadDir:  cfg.UploadDir,
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, h)

	// Start Server
	log.Info("starting server", zap.String("port", cfg.Port), zap.String("site", site.SiteName))
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
