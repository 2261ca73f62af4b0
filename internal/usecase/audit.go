package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditPublisher интерфейс для публикации аудита (RabbitMQ in production)
type AuditPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

// LogPublisher only logs audit messages. It stands in when no broker is configured.
type LogPublisher struct {
	Log logrus.FieldLogger
}

func (p LogPublisher) PublishAuditMessage(_ context.Context, message *entity.AuditMessage) error {
	p.Log.WithFields(logrus.Fields{
		"message_id":  message.MessageID,
		"action":      message.Action,
		"entity_type": message.EntityType,
		"entity_id":   message.EntityID,
	}).Info("audit")
	return nil
}

type auditor struct {
	publisher AuditPublisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func newAuditor(publisher AuditPublisher, log logrus.FieldLogger, now func() time.Time) *auditor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if publisher == nil {
		publisher = LogPublisher{Log: log}
	}
	return &auditor{publisher: publisher, log: log, now: now}
}

// record publishes the audit message after the transaction committed. It runs
// asynchronously and never fails the caller.
func (a *auditor) record(action entity.ActionType, entityType string, entityID int64, oldValues, newValues map[string]any) {
	msg := &entity.AuditMessage{
		MessageID:  uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Timestamp:  a.now().UTC(),
	}
	if action == entity.ActionUpdate {
		msg.Changes = diffValues(oldValues, newValues)
	}

	go func() {
		entry := a.log.WithFields(logrus.Fields{
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
		})
		if err := a.publisher.PublishAuditMessage(context.Background(), msg); err != nil {
			entry.WithError(err).Error("failed to publish audit message")
			return
		}
		entry.Debug("audit message published")
	}()
}

func diffValues(oldValues, newValues map[string]any) map[string]any {
	changes := make(map[string]any)
	for key, newValue := range newValues {
		oldValue, ok := oldValues[key]
		if !ok || oldValue != newValue {
			changes[key] = map[string]any{"old": oldValue, "new": newValue}
		}
	}
	return changes
}

func personValues(p *entity.Person) map[string]any {
	return map[string]any{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"dni":        p.DNI,
	}
}

func taskValues(t *entity.Task) map[string]any {
	values := map[string]any{
		"description":   t.Description,
		"done":          t.Done,
		"creation_date": t.CreationDate.UTC().Format(time.RFC3339),
		"person_id":     nil,
		"due_date":      nil,
	}
	if id := t.PersonID(); id != nil {
		values["person_id"] = *id
	}
	if t.DueDate != nil {
		values["due_date"] = t.DueDate.Format("2006-01-02")
	}
	return values
}
