package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/domain/entities/auditlog"
	"github.com/campuskit/campuskit/modules/request/infrastructure/persistence/models"
	"github.com/campuskit/campuskit/pkg/composables"
)

type AuditLogRepository struct{}

func NewAuditLogRepository() auditlog.Repository {
	return &AuditLogRepository{}
}

// Create appends an entry inside the caller's transaction. UseStrictTx means
// there is no pool fallback: calling this outside a transaction is a bug and
// fails with ErrNoTx.
func (r *AuditLogRepository) Create(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error) {
	tx, err := composables.UseStrictTx(ctx)
	if err != nil {
		return auditlog.Entry{}, err
	}

	query := `INSERT INTO request_audit_logs (request_id, change_type, actor_id, old_value, new_value)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

	var row models.AuditLog
	err = tx.QueryRow(ctx, query,
		e.RequestID(), string(e.ChangeType()), e.ActorID(), []byte(e.OldValue()), []byte(e.NewValue()),
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return auditlog.Entry{}, gerrors.Wrap(err, "create audit entry")
	}

	return auditlog.Hydrate(
		row.ID, e.RequestID(), e.ChangeType(), e.ActorID(), e.OldValue(), e.NewValue(), row.CreatedAt,
	), nil
}

func (r *AuditLogRepository) ListByRequestID(ctx context.Context, requestID string) ([]auditlog.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, request_id, change_type, actor_id, old_value, new_value, created_at
	FROM request_audit_logs
	WHERE request_id = $1
	ORDER BY created_at, id`

	rows, err := tx.Query(ctx, query, requestID)
	if err != nil {
		return nil, gerrors.Wrap(err, "list audit entries")
	}
	defer rows.Close()

	var out []auditlog.Entry
	for rows.Next() {
		var row models.AuditLog
		if err := rows.Scan(
			&row.ID, &row.RequestID, &row.ChangeType, &row.ActorID,
			&row.OldValue, &row.NewValue, &row.CreatedAt,
		); err != nil {
			return nil, gerrors.Wrap(err, "scan audit entry")
		}
		out = append(out, auditlog.Hydrate(
			row.ID, row.RequestID, request.ChangeType(row.ChangeType), row.ActorID,
			row.OldValue, row.NewValue, row.CreatedAt,
		))
	}
	return out, rows.Err()
}
