package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
)

// EmailMessage is the envelope published to the notification topic and
// consumed by the mail worker.
type EmailMessage struct {
	Kind    enums.NotificationKind `json:"kind"`
	To      string                 `json:"to"`
	Subject string                 `json:"subject"`
	Body    string                 `json:"body"`
}

// Enqueuer is the fire-and-forget surface services depend on. Publish
// failures never surface to the caller, the triggering request must not
// fail because mail could not be sent.
type Enqueuer interface {
	Enqueue(ctx context.Context, msg EmailMessage)
}

type messagePublisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) *pubsub.PublishResult
}

// Notifier publishes email events to Pub/Sub.
type Notifier struct {
	publisher messagePublisher
	logg      *logger.Logger
}

// NewNotifier wires a notifier onto the notification topic publisher.
func NewNotifier(publisher *pubsub.Publisher, logg *logger.Logger) (*Notifier, error) {
	if publisher == nil {
		return nil, fmt.Errorf("notification publisher is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Notifier{publisher: publisher, logg: logg}, nil
}

// Enqueue publishes the message and returns immediately. The publish
// result is drained in the background so failures are logged, not raised.
func (n *Notifier) Enqueue(ctx context.Context, msg EmailMessage) {
	if n == nil || n.publisher == nil {
		return
	}
	if strings.TrimSpace(msg.To) == "" || !msg.Kind.IsValid() {
		logCtx := n.logg.WithFields(ctx, map[string]any{"kind": string(msg.Kind)})
		n.logg.Warn(logCtx, "notify.enqueue.invalid_message")
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		n.logg.Error(ctx, "notify.enqueue.marshal_failed", err)
		return
	}

	result := n.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event_type": string(msg.Kind)},
	})

	logCtx := n.logg.WithFields(context.WithoutCancel(ctx), map[string]any{
		"kind": string(msg.Kind),
	})
	go func() {
		if _, err := result.Get(logCtx); err != nil {
			n.logg.Warn(n.logg.WithFields(logCtx, map[string]any{"error": err.Error()}), "notify.publish_failed")
		}
	}()
}
