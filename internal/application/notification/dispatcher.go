// Package notification entrega y consulta las notificaciones del flujo.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ workflow.Notifier = (*Dispatcher)(nil)

// Publisher canal externo opcional (p. ej. Kafka).
type Publisher interface {
	Publish(ctx context.Context, n *entity.Notification) error
}

// Dispatcher guarda cada evento como Notification y luego lo publica.
type Dispatcher struct {
	repo      repository.NotificationRepository
	publisher Publisher
	now       func() time.Time
}

// NewDispatcher publisher puede ser nil.
func NewDispatcher(repo repository.NotificationRepository, publisher Publisher) *Dispatcher {
	return &Dispatcher{repo: repo, publisher: publisher, now: time.Now}
}

// Notify implementa workflow.Notifier. Los errores de almacenamiento y publicación se combinan.
func (d *Dispatcher) Notify(ctx context.Context, ev entity.NotificationEvent) error {
	if ev.Recipient == "" && ev.RecipientRole == "" {
		return fmt.Errorf("notificación %q sin destinatario", ev.Type)
	}
	n := &entity.Notification{
		ID:                  uuid.New().String(),
		Type:                ev.Type,
		Message:             ev.Message,
		Status:              entity.NotificationPending,
		Recipient:           ev.Recipient,
		RecipientRole:       ev.RecipientRole,
		Department:          ev.Department,
		RelatedRequestID:    ev.RelatedRequestID,
		RelatedIssuedItemID: ev.RelatedIssuedItemID,
		CreatedBy:           ev.CreatedBy,
		CreatedAt:           d.now(),
	}
	var errs []error
	if err := d.repo.Create(ctx, n); err != nil {
		errs = append(errs, fmt.Errorf("guardar notificación: %w", err))
	}
	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("publicar notificación: %w", err))
		}
	}
	return errors.Join(errs...)
}
