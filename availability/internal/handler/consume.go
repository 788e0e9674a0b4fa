package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/errs"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type statusUpdater func(ctx context.Context, equipmentID, status string) error

// Consumer applies equipment-status events.
type Consumer struct {
	update statusUpdater
	log    *zap.Logger
}

func NewConsumer(update statusUpdater, log *zap.Logger) *Consumer {
	return &Consumer{
		update: update,
		log:    log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			if err := consumer.handle(session.Context(), message.Value); err != nil {
				consumer.log.Error("handle equipment status",
					zap.Error(err),
					zap.String("value", string(message.Value)),
					zap.Int64("offset", message.Offset))
				if !errors.Is(err, errDrop) {
					// left unmarked so the event is redelivered after a restart
					continue
				}
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// errDrop marks events that can never succeed.
var errDrop = errors.New("drop event")

func (consumer *Consumer) handle(ctx context.Context, value []byte) error {
	var event kafka.EquipmentStatusEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return errors.Wrapf(errDrop, "unmarshal: %v", err)
	}
	if event.EquipmentID == "" {
		return errors.Wrap(errDrop, "empty equipmentId")
	}
	if err := consumer.update(ctx, event.EquipmentID, event.Status); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errors.Wrapf(errDrop, "equipment %s: %v", event.EquipmentID, err)
		}
		if errors.Is(err, domain.ErrUnknownStatus) {
			return errors.Wrapf(errDrop, "%v", err)
		}
		return err
	}
	consumer.log.Debug("equipment status applied",
		zap.String("equipmentId", event.EquipmentID),
		zap.String("status", event.Status))
	return nil
}
