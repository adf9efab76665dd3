package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "github.com/RadikAgl/events/contexts/event-management/registration-service/application"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/ports"
)

// DeliveryWorker drains one claimed batch of pending outbox messages per run.
// Instances may run concurrently against the same store: the claim skips rows
// held by other workers, so batches are disjoint.
type DeliveryWorker struct {
	Outbox    ports.OutboxStore
	Gateway   ports.NotificationGateway
	BatchSize int
	Logger    *slog.Logger
}

type DeliveryStats struct {
	Claimed int
	Sent    int
	Retried int
	Failed  int
}

func (w DeliveryWorker) RunOnce(ctx context.Context) (DeliveryStats, error) {
	logger := application.ResolveLogger(w.Logger)
	batchSize := w.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	messages, err := w.Outbox.Claim(ctx, batchSize)
	if err != nil {
		logger.Error("outbox claim failed",
			"event", "delivery_worker_claim_failed",
			"module", "event-management/registration-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return DeliveryStats{}, err
	}

	stats := DeliveryStats{Claimed: len(messages)}
	for _, message := range messages {
		var notice ports.RegistrationNotice
		if err := json.Unmarshal(message.Payload, &notice); err != nil {
			if err := w.recordFailure(ctx, message, "payload decode failed: "+err.Error(), &stats); err != nil {
				return stats, err
			}
			continue
		}

		if !w.Gateway.Send(ctx, message.MessageID, notice.Email, notice.FullName, notice.ConfirmationCode) {
			if err := w.recordFailure(ctx, message, "notification gateway rejected the message", &stats); err != nil {
				return stats, err
			}
			continue
		}

		if err := w.Outbox.MarkSent(ctx, message.ID); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "delivery_worker_mark_sent_failed",
				"module", "event-management/registration-service",
				"layer", "worker",
				"outbox_id", message.ID,
				"error", err.Error(),
			)
			return stats, err
		}
		stats.Sent++
	}

	if stats.Claimed > 0 {
		logger.Info("delivery cycle completed",
			"event", "delivery_worker_cycle_completed",
			"module", "event-management/registration-service",
			"layer", "worker",
			"claimed", stats.Claimed,
			"sent", stats.Sent,
			"retried", stats.Retried,
			"failed", stats.Failed,
		)
	}
	return stats, nil
}

// recordFailure applies the bounded-retry policy: a message below the attempt
// cap goes back to pending, one at the cap is parked as failed.
func (w DeliveryWorker) recordFailure(
	ctx context.Context,
	message entities.OutboxMessage,
	deliveryErr string,
	stats *DeliveryStats,
) error {
	logger := application.ResolveLogger(w.Logger)

	if message.Exhausted() {
		if err := w.Outbox.MarkFailed(ctx, message.ID, deliveryErr); err != nil {
			return err
		}
		stats.Failed++
		logger.Error("message delivery exhausted",
			"event", "delivery_worker_message_failed",
			"module", "event-management/registration-service",
			"layer", "worker",
			"outbox_id", message.ID,
			"attempts", message.Attempts,
			"error", deliveryErr,
		)
		return nil
	}

	if err := w.Outbox.MarkRetry(ctx, message.ID, deliveryErr); err != nil {
		return err
	}
	stats.Retried++
	logger.Warn("message delivery will be retried",
		"event", "delivery_worker_message_retried",
		"module", "event-management/registration-service",
		"layer", "worker",
		"outbox_id", message.ID,
		"attempts", message.Attempts,
		"error", deliveryErr,
	)
	return nil
}
