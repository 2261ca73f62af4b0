package repository

import (
	"context"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// Create stores one audit row. A message id seen before is ignored so
// redelivered broker messages do not duplicate the trail.
func (r *AuditRepository) Create(ctx context.Context, record *entity.AuditRecord) error {
	query := `
	INSERT INTO audit_log (message_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (message_id) DO NOTHING
	`

	_, err := conn(ctx, r.db).Exec(
		ctx,
		query,
		record.MessageID,
		record.Action,
		record.EntityType,
		record.EntityID,
		record.OldValues,
		record.NewValues,
		record.Changes,
		record.ChangedAt,
	)
	return err
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]entity.AuditRecord, error) {
	query := `
	SELECT id, message_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at
	FROM audit_log
	WHERE entity_type = $1 AND entity_id = $2
	ORDER BY changed_at DESC, id DESC
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.AuditRecord
	for rows.Next() {
		var record entity.AuditRecord
		err := rows.Scan(
			&record.ID,
			&record.MessageID,
			&record.Action,
			&record.EntityType,
			&record.EntityID,
			&record.OldValues,
			&record.NewValues,
			&record.Changes,
			&record.ChangedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
