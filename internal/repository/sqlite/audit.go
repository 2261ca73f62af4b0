package sqlite

import (
	"context"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
)

type AuditRepository struct {
	store *Store
}

func (r *AuditRepository) Create(ctx context.Context, record *entity.AuditRecord) error {
	_, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO audit_log (message_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (message_id) DO NOTHING`,
		record.MessageID,
		string(record.Action),
		record.EntityType,
		record.EntityID,
		record.OldValues,
		record.NewValues,
		record.Changes,
		toMillis(record.ChangedAt),
	)
	return err
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]entity.AuditRecord, error) {
	rows, err := r.store.conn(ctx).QueryContext(ctx,
		`SELECT id, message_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at
		 FROM audit_log
		 WHERE entity_type = ? AND entity_id = ?
		 ORDER BY changed_at DESC, id DESC`,
		entityType, entityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.AuditRecord
	for rows.Next() {
		var (
			record    entity.AuditRecord
			action    string
			changedAt int64
		)
		if err := rows.Scan(
			&record.ID,
			&record.MessageID,
			&action,
			&record.EntityType,
			&record.EntityID,
			&record.OldValues,
			&record.NewValues,
			&record.Changes,
			&changedAt,
		); err != nil {
			return nil, err
		}
		record.Action = entity.ActionType(action)
		record.ChangedAt = fromMillis(changedAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ repository.IAuditRepository = (*AuditRepository)(nil)
