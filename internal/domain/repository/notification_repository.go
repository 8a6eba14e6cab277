package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// NotificationFilter bandeja visible para un actor: lo dirigido a UserID, más lo dirigido a Role
// dentro de Department (o en cualquier departamento si AllDepartments).
type NotificationFilter struct {
	UserID         string
	Role           entity.Role
	Department     string
	AllDepartments bool
	Statuses       []entity.NotificationStatus
}

// NotificationRepository puerto de persistencia de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, f NotificationFilter, limit int) ([]*entity.Notification, error)
	Count(ctx context.Context, f NotificationFilter) (int, error)
	// MarkRead pasa Pending -> Completed todo lo visible por el filtro.
	MarkRead(ctx context.Context, f NotificationFilter, at time.Time) (int64, error)
	Archive(ctx context.Context, id string, f NotificationFilter) (bool, error)
	DeletePendingByRequest(ctx context.Context, requestID string) (int64, error)
}
