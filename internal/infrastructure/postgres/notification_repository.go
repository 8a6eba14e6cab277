package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, type, message, status, recipient, recipient_role, department,
	related_request_id, related_issued_item_id, created_by, created_at, read_at`

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// inbox arma la condición de visibilidad; los parámetros empiezan en $1.
func inbox(f repository.NotificationFilter) (string, []any) {
	where := `(recipient = $1 OR (recipient = '' AND recipient_role = $2 AND recipient_role <> ''
		AND ($3 OR department = '' OR department = $4)))`
	args := []any{f.UserID, string(f.Role), f.AllDepartments, f.Department}
	if len(f.Statuses) > 0 {
		st := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			st[i] = string(s)
		}
		where += ` AND status = ANY($5)`
		args = append(args, st)
	}
	return where, args
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(&n.ID, &n.Type, &n.Message, &n.Status, &n.Recipient, &n.RecipientRole, &n.Department,
		&n.RelatedRequestID, &n.RelatedIssuedItemID, &n.CreatedBy, &n.CreatedAt, &n.ReadAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste la notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, type, message, status, recipient, recipient_role, department,
			related_request_id, related_issued_item_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, n.ID, n.Type, n.Message, n.Status, n.Recipient, n.RecipientRole, n.Department,
		n.RelatedRequestID, n.RelatedIssuedItemID, n.CreatedBy, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List bandeja del actor, recientes primero.
func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter, limit int) ([]*entity.Notification, error) {
	where, args := inbox(f)
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE %s ORDER BY created_at DESC LIMIT $%d`,
		notificationColumns, where, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Count total visible por el filtro.
func (r *NotificationRepo) Count(ctx context.Context, f repository.NotificationFilter) (int, error) {
	where, args := inbox(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// MarkRead Pending -> Completed.
func (r *NotificationRepo) MarkRead(ctx context.Context, f repository.NotificationFilter, at time.Time) (int64, error) {
	f.Statuses = nil
	where, args := inbox(f)
	args = append(args, entity.NotificationCompleted, at, entity.NotificationPending)
	query := fmt.Sprintf(`UPDATE notifications SET status = $5, read_at = $6 WHERE status = $7 AND %s`, where)
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Archive pasa a Archived una notificación visible para el actor.
func (r *NotificationRepo) Archive(ctx context.Context, id string, f repository.NotificationFilter) (bool, error) {
	f.Statuses = nil
	where, args := inbox(f)
	args = append(args, entity.NotificationArchived, id)
	query := fmt.Sprintf(`UPDATE notifications SET status = $5 WHERE id = $6 AND %s`, where)
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("archive notification: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeletePendingByRequest borra las notificaciones no leídas de una solicitud cancelada.
func (r *NotificationRepo) DeletePendingByRequest(ctx context.Context, requestID string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM notifications WHERE related_request_id = $1 AND status = $2`,
		requestID, entity.NotificationPending)
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return cmd.RowsAffected(), nil
}
