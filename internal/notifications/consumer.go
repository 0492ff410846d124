package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/stylehaven/stylehaven-backend/pkg/logger"
	"github.com/stylehaven/stylehaven-backend/pkg/mailer"
	"github.com/stylehaven/stylehaven-backend/pkg/notify"
)

// Consumer drains the notification subscription and delivers each email via
// SMTP. Delivery is best effort: messages are acked whether or not the send
// succeeds, failures are only logged. There is no retry queue.
type Consumer struct {
	subscription *pubsub.Subscriber
	sender       mailer.Sender
	logg         *logger.Logger
}

// NewConsumer builds an email notification consumer.
func NewConsumer(subscription *pubsub.Subscriber, sender mailer.Sender, logg *logger.Logger) (*Consumer, error) {
	if subscription == nil {
		return nil, fmt.Errorf("notification subscription required")
	}
	if sender == nil {
		return nil, fmt.Errorf("mail sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		subscription: subscription,
		sender:       sender,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		c.process(ctx, msg)
		msg.Ack()
	})
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) {
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": msg.Attributes["event_type"],
	})

	var email notify.EmailMessage
	if err := json.Unmarshal(msg.Data, &email); err != nil {
		c.logg.Error(logCtx, "failed to decode email message", err)
		return
	}
	if !email.Kind.IsValid() || email.To == "" {
		c.logg.Warn(logCtx, "dropping malformed email message")
		return
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"kind": email.Kind.String(),
		"to":   email.To,
	})

	if err := c.sender.Send(email.To, email.Subject, email.Body); err != nil {
		c.logg.Error(logCtx, "email delivery failed", err)
		return
	}
	c.logg.Info(logCtx, "email delivered")
}
