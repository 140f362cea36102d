package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/invitarte/invitarte-api/internal/auth"
	"github.com/invitarte/invitarte-api/internal/logger"
	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/notifier"
	"github.com/invitarte/invitarte-api/internal/payment"
	"github.com/invitarte/invitarte-api/internal/settings"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BillingHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	gateway     payment.Gateway
	site        *settings.Site
	notifier    notifier.Notifier
	notifyURL   string
	log         *zap.Logger
}

func NewBillingHandler(db *gorm.DB, authHandler *auth.AuthHandler, gateway payment.Gateway, site *settings.Site, n notifier.Notifier, notifyURL string) *BillingHandler {
	return &BillingHandler{
		db:          db,
		authHandler: authHandler,
		gateway:     gateway,
		site:        site,
		notifier:    n,
		notifyURL:   notifyURL,
		log:         logger.WithComponent("billing"),
	}
}

type SubscribeRequest struct {
	auth.AuthInput
	EventID uint `path:"eventID"`
	Body    struct {
		Tier string `json:"tier" doc:"Subscription tier, priced by site settings" required:"true" minLength:"1"`
	}
}

type SubscribeResponse struct {
	Body struct {
		Reference   string `json:"reference"`
		CheckoutURL string `json:"checkout_url"`
	}
}

// HandleSubscribe starts a paid upgrade: it records a pending subscription
// and asks the gateway for a checkout. Gateway trouble is logged and
// surfaced as a generic failure; there is no retry.
func (h *BillingHandler) HandleSubscribe(ctx context.Context, input *SubscribeRequest) (*SubscribeResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := ownedEvent(h.db, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	price, ok := h.site.PriceFor(input.Body.Tier)
	if !ok {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Unknown tier %q", input.Body.Tier))
	}

	sub := models.Subscription{
		EventID:    event.ID,
		UserID:     userID,
		Tier:       input.Body.Tier,
		Amount:     price,
		Currency:   h.site.Currency,
		Status:     models.SubscriptionPending,
		GatewayRef: uuid.NewString(),
	}
	if err := h.db.Create(&sub).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create subscription")
	}

	checkout, err := h.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		Reference: sub.GatewayRef,
		Title:     fmt.Sprintf("%s — plan %s", event.Name, sub.Tier),
		Amount:    sub.Amount,
		Currency:  sub.Currency,
		Mode:      h.site.PaymentMode,
		NotifyURL: h.notifyURL,
	})
	if err != nil {
		h.log.Error("checkout creation failed", zap.Uint("event_id", event.ID), zap.Error(err))
		return nil, huma.Error502BadGateway("Pago no disponible")
	}

	res := &SubscribeResponse{}
	res.Body.Reference = checkout.Reference
	res.Body.CheckoutURL = checkout.CheckoutURL
	return res, nil
}

type PaymentNotifyRequest struct {
	Body payment.Notification
}

type PaymentNotifyResponse struct {
	Body struct {
		Status models.SubscriptionStatus `json:"status"`
	}
}

// HandleNotify is the gateway webhook. Approved payments activate the
// subscription and flip the event to premium in one transaction.
func (h *BillingHandler) HandleNotify(ctx context.Context, input *PaymentNotifyRequest) (*PaymentNotifyResponse, error) {
	var sub models.Subscription
	if err := h.db.Where("gateway_ref = ?", input.Body.Reference).First(&sub).Error; err != nil {
		return nil, huma.Error404NotFound("Unknown payment reference")
	}

	status := models.SubscriptionFailed
	if input.Body.Status == payment.NotificationApproved {
		status = models.SubscriptionActive
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sub).Update("status", status).Error; err != nil {
			return err
		}
		if status == models.SubscriptionActive {
			return tx.Model(&models.Event{}).Where("id = ?", sub.EventID).Update("premium", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to process notification")
	}
	sub.Status = status

	if h.notifier != nil {
		var event models.Event
		if err := h.db.First(&event, sub.EventID).Error; err == nil {
			h.notifier.NotifySubscription(event, sub)
		}
	}

	res := &PaymentNotifyResponse{}
	res.Body.Status = status
	return res, nil
}
