package models

import (
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionPending SubscriptionStatus = "pending"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionFailed  SubscriptionStatus = "failed"
)

// Subscription tracks one paid upgrade of an event. GatewayRef is the payment
// provider's reference, used to correlate the webhook notification.
type Subscription struct {
	gorm.Model
	EventID    uint               `json:"event_id" gorm:"index"`
	UserID     uint               `json:"user_id"`
	Tier       string             `json:"tier"`
	Amount     float64            `json:"amount"`
	Currency   string             `json:"currency"`
	Status     SubscriptionStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
	GatewayRef string             `json:"gateway_ref" gorm:"index"`
}
