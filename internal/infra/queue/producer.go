package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/refinly/loan-referral/internal/usecase"
)

// LeadNotificationPayload is the message body on k.lead.created.
type LeadNotificationPayload struct {
	EventID      string                   `json:"event_id"`
	OccurredAt   time.Time                `json:"occurred_at"`
	Notification usecase.LeadNotification `json:"notification"`
}

// Publisher is satisfied by *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

// NotifyNewLead enqueues the notification for the worker to deliver.
func (p *RabbitMQProducer) NotifyNewLead(ctx context.Context, n usecase.LeadNotification) error {
	payload := LeadNotificationPayload{
		EventID:      uuid.NewString(),
		OccurredAt:   time.Now().UTC(),
		Notification: n,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.EventID,
			Timestamp:    payload.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead %d: %w", n.LeadID, err)
	}
	return nil
}
