package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/invitarte/invitarte-api/internal/logger"
	"github.com/invitarte/invitarte-api/internal/models"
)

// Notifier pushes operational events (RSVP answers, paid subscriptions) to
// the ops channel. A nil Notifier is valid and drops everything.
type Notifier interface {
	NotifyRSVP(event models.Event, group models.GuestGroup) error
	NotifySubscription(event models.Event, sub models.Subscription) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRSVP(event models.Event, group models.GuestGroup) error {
	attending := 0
	for _, m := range group.Members {
		if m.IsAttending != nil && *m.IsAttending {
			attending++
		}
	}

	message := fmt.Sprintf("💌 **RSVP recibido**\n**Evento:** %s\n**Grupo:** %s\n**Asisten:** %d/%d\n**Pases:** %d",
		event.Name,
		group.GroupName,
		attending,
		len(group.Members),
		group.TotalPasses,
	)

	return n.send(message)
}

func (n *DiscordNotifier) NotifySubscription(event models.Event, sub models.Subscription) error {
	message := fmt.Sprintf("💳 **Suscripción %s**\n**Evento:** %s\n**Plan:** %s\n**Monto:** %.2f %s",
		sub.Status,
		event.Name,
		sub.Tier,
		sub.Amount,
		sub.Currency,
	)

	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		logger.WithComponent("notifier").Warn("failed to send discord message: " + err.Error())
		return err
	}

	return nil
}
