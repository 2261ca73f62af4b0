package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const consumerTag = "audit_worker"

// DeliverySource отдаёт поток сообщений из очереди аудита
type DeliverySource interface {
	Consume(ctx context.Context, consumer string) (<-chan amqp.Delivery, error)
}

type AuditWorker struct {
	source    DeliverySource
	auditRepo repository.IAuditRepository
	log       logrus.FieldLogger
	retry     time.Duration
}

func NewAuditWorker(source DeliverySource, auditRepo repository.IAuditRepository, log logrus.FieldLogger) *AuditWorker {
	return &AuditWorker{
		source:    source,
		auditRepo: auditRepo,
		log:       log.WithField("component", "audit_worker"),
		retry:     5 * time.Second,
	}
}

// Start consumes until ctx is done, reconnecting after failures.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info("audit worker started")
	for {
		err := w.run(ctx)
		if ctx.Err() != nil {
			w.log.Info("audit worker stopped")
			return
		}
		w.log.WithError(err).Warnf("audit consumer interrupted, retrying in %s", w.retry)

		select {
		case <-ctx.Done():
			w.log.Info("audit worker stopped")
			return
		case <-time.After(w.retry):
		}
	}
}

func (w *AuditWorker) run(ctx context.Context) error {
	msgs, err := w.source.Consume(ctx, consumerTag)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *AuditWorker) handle(ctx context.Context, msg amqp.Delivery) {
	// 1. Парсим сообщение
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		w.log.WithError(err).Error("failed to parse audit message")
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}
	if auditMsg.MessageID == "" {
		auditMsg.MessageID = msg.MessageId
	}

	// 2. Конвертируем в AuditRecord
	record, err := toAuditRecord(&auditMsg)
	if err != nil {
		w.log.WithError(err).Error("failed to convert audit message")
		msg.Nack(false, false)
		return
	}

	// 3. Сохраняем в БД
	if err := w.auditRepo.Create(ctx, record); err != nil {
		w.log.WithError(err).Error("failed to store audit record")
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 4. Подтверждаем обработку
	msg.Ack(false)
	w.log.WithFields(logrus.Fields{
		"action":      record.Action,
		"entity_type": record.EntityType,
		"entity_id":   record.EntityID,
	}).Debug("audit record stored")
}

func toAuditRecord(msg *entity.AuditMessage) (*entity.AuditRecord, error) {
	if msg.MessageID == "" || msg.EntityType == "" {
		return nil, fmt.Errorf("audit message without id or entity type")
	}

	oldValues, err := marshalValues(msg.OldValues)
	if err != nil {
		return nil, err
	}
	newValues, err := marshalValues(msg.NewValues)
	if err != nil {
		return nil, err
	}
	changes, err := marshalValues(msg.Changes)
	if err != nil {
		return nil, err
	}

	changedAt := msg.Timestamp
	if changedAt.IsZero() {
		changedAt = time.Now()
	}

	return &entity.AuditRecord{
		MessageID:  msg.MessageID,
		Action:     msg.Action,
		EntityType: msg.EntityType,
		EntityID:   msg.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Changes:    changes,
		ChangedAt:  changedAt.UTC(),
	}, nil
}

// marshalValues конвертирует map[string]any в JSON строку
func marshalValues(values map[string]any) (*string, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
