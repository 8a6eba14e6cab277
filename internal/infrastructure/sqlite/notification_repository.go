package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, type, message, status, recipient, recipient_role, department,
	related_request_id, related_issued_item_id, created_by, created_at, read_at`

// NotificationRepo implementación de NotificationRepository sobre SQLite.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository pasar *sql.DB o *sql.Tx.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// inbox misma condición de visibilidad que el adaptador PostgreSQL.
func inbox(f repository.NotificationFilter) (string, []any) {
	where := `(recipient = ? OR (recipient = '' AND recipient_role = ? AND recipient_role <> ''
		AND (? OR department = '' OR department = ?)))`
	args := []any{f.UserID, string(f.Role), f.AllDepartments, f.Department}
	if len(f.Statuses) > 0 {
		where += ` AND status IN (` + placeholders(len(f.Statuses)) + `)`
		for _, s := range f.Statuses {
			args = append(args, string(s))
		}
	}
	return where, args
}

func scanNotification(row scanner) (*entity.Notification, error) {
	var (
		n       entity.Notification
		created string
		readAt  sql.NullString
	)
	err := row.Scan(&n.ID, &n.Type, &n.Message, &n.Status, &n.Recipient, &n.RecipientRole, &n.Department,
		&n.RelatedRequestID, &n.RelatedIssuedItemID, &n.CreatedBy, &created, &readAt)
	if err != nil {
		return nil, err
	}
	if n.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if n.ReadAt, err = parseNullTime(readAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste la notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notifications (id, type, message, status, recipient, recipient_role, department,
			related_request_id, related_issued_item_id, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Type), n.Message, string(n.Status), n.Recipient, string(n.RecipientRole), n.Department,
		n.RelatedRequestID, n.RelatedIssuedItemID, n.CreatedBy, formatTime(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List bandeja del actor, recientes primero.
func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter, limit int) ([]*entity.Notification, error) {
	where, args := inbox(f)
	args = append(args, limit)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE `+where+` ORDER BY created_at DESC LIMIT ?`, args...)
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
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// MarkRead Pending -> Completed.
func (r *NotificationRepo) MarkRead(ctx context.Context, f repository.NotificationFilter, at time.Time) (int64, error) {
	f.Statuses = nil
	where, args := inbox(f)
	args = append([]any{string(entity.NotificationCompleted), formatTime(at), string(entity.NotificationPending)}, args...)
	res, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET status = ?, read_at = ? WHERE status = ? AND `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return rowsAffected(res)
}

// Archive pasa a Archived una notificación visible para el actor.
func (r *NotificationRepo) Archive(ctx context.Context, id string, f repository.NotificationFilter) (bool, error) {
	f.Statuses = nil
	where, args := inbox(f)
	args = append([]any{string(entity.NotificationArchived), id}, args...)
	res, err := r.q.ExecContext(ctx, `UPDATE notifications SET status = ? WHERE id = ? AND `+where, args...)
	if err != nil {
		return false, fmt.Errorf("archive notification: %w", err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// DeletePendingByRequest borra las no leídas de una solicitud cancelada.
func (r *NotificationRepo) DeletePendingByRequest(ctx context.Context, requestID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE related_request_id = ? AND status = ?`,
		requestID, string(entity.NotificationPending))
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
