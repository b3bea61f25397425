package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/refinly/loan-referral/internal/usecase"
	"go.uber.org/zap"
)

// Consumer is satisfied by *amqp.Channel.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker drains q.lead.notifications and hands each lead to the notifier.
type Worker struct {
	Channel  Consumer
	Notifier usecase.AdminNotifier
	Logger   *zap.Logger
}

func NewWorker(ch Consumer, notifier usecase.AdminNotifier, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Logger:   logger,
	}
}

// Start blocks until ctx is cancelled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("notification worker started", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("notification worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queueName)
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadNotificationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error("malformed notification payload", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log := w.Logger.With(
		zap.String("event_id", payload.EventID),
		zap.Int64("lead_id", payload.Notification.LeadID),
	)

	if err := w.Notifier.NotifyNewLead(ctx, payload.Notification); err != nil {
		log.Error("lead notification failed", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log.Info("lead notification delivered")
	d.Ack(false)
}
