package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/invitarte/invitarte-api/internal/payment"
	"github.com/invitarte/invitarte-api/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	fail bool
	last payment.CheckoutRequest
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	g.last = req
	if g.fail {
		return nil, errors.New("gateway down")
	}
	return &payment.Checkout{Reference: req.Reference, CheckoutURL: "https://pay.example/" + req.Reference}, nil
}

func testSite() *settings.Site {
	return &settings.Site{
		SiteName:    "Invitarte",
		Currency:    "PEN",
		PaymentMode: "test",
		TierPrices:  map[string]float64{"premium": 149},
	}
}

func TestHandleSubscribe(t *testing.T) {
	db := setupDB(t)
	gateway := &fakeGateway{}
	handler := NewBillingHandler(db, testAuthHandler(db), gateway, testSite(), nil, "https://api.example/billing/notify")
	owner, eventA, _, _ := seedCheckIn(t, db)
	ctx := authedCtx(owner.ID)

	input := &SubscribeRequest{EventID: eventA.ID}
	input.Body.Tier = "premium"

	resp, err := handler.HandleSubscribe(ctx, input)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Body.Reference)
	assert.Contains(t, resp.Body.CheckoutURL, resp.Body.Reference)
	assert.Equal(t, 149.0, gateway.last.Amount)
	assert.Equal(t, "PEN", gateway.last.Currency)

	var sub models.Subscription
	require.NoError(t, db.Where("gateway_ref = ?", resp.Body.Reference).First(&sub).Error)
	assert.Equal(t, models.SubscriptionPending, sub.Status)

	t.Run("UnknownTier", func(t *testing.T) {
		bad := &SubscribeRequest{EventID: eventA.ID}
		bad.Body.Tier = "diamante"
		_, err := handler.HandleSubscribe(ctx, bad)
		require.Error(t, err)
	})

	t.Run("GatewayFailureIsGeneric", func(t *testing.T) {
		gateway.fail = true
		defer func() { gateway.fail = false }()

		bad := &SubscribeRequest{EventID: eventA.ID}
		bad.Body.Tier = "premium"
		_, err := handler.HandleSubscribe(ctx, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Pago no disponible")
	})
}

func TestHandleNotify(t *testing.T) {
	db := setupDB(t)
	handler := NewBillingHandler(db, testAuthHandler(db), &fakeGateway{}, testSite(), nil, "")
	_, eventA, _, _ := seedCheckIn(t, db)

	sub := models.Subscription{
		EventID:    eventA.ID,
		Tier:       "premium",
		Amount:     149,
		Currency:   "PEN",
		Status:     models.SubscriptionPending,
		GatewayRef: "ref-123",
	}
	require.NoError(t, db.Create(&sub).Error)

	t.Run("Approved", func(t *testing.T) {
		input := &PaymentNotifyRequest{}
		input.Body.Reference = "ref-123"
		input.Body.Status = payment.NotificationApproved

		resp, err := handler.HandleNotify(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionActive, resp.Body.Status)

		var event models.Event
		require.NoError(t, db.First(&event, eventA.ID).Error)
		assert.True(t, event.Premium, "approved payment must flip the event to premium")
	})

	t.Run("UnknownReference", func(t *testing.T) {
		input := &PaymentNotifyRequest{}
		input.Body.Reference = "ref-nope"
		input.Body.Status = payment.NotificationApproved
		_, err := handler.HandleNotify(context.Background(), input)
		require.Error(t, err)
	})
}
