package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

// DefaultListLimit tope de la bandeja.
const DefaultListLimit = 50

// UseCase bandeja de notificaciones del actor.
type UseCase struct {
	repo       repository.NotificationRepository
	dispatcher *Dispatcher
	log        zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository, dispatcher *Dispatcher, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, dispatcher: dispatcher, log: log.With().Str("component", "notifications").Logger()}
}

// inboxFor lo dirigido al usuario o a su rol; MMG y Super_Admin ven su rol en todos los departamentos.
func inboxFor(actor entity.Actor, statuses ...entity.NotificationStatus) repository.NotificationFilter {
	return repository.NotificationFilter{
		UserID:         actor.ID,
		Role:           actor.Role,
		Department:     actor.Department,
		AllDepartments: actor.Is(entity.RoleMMGInventoryHolder, entity.RoleSuperAdmin),
		Statuses:       statuses,
	}
}

// List notificaciones no archivadas.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return uc.repo.List(ctx, inboxFor(actor, entity.NotificationPending, entity.NotificationCompleted), limit)
}

// UnreadCount notificaciones Pending.
func (uc *UseCase) UnreadCount(ctx context.Context, actor entity.Actor) (int, error) {
	return uc.repo.Count(ctx, inboxFor(actor, entity.NotificationPending))
}

// MarkAllRead Pending -> Completed.
func (uc *UseCase) MarkAllRead(ctx context.Context, actor entity.Actor) (int64, error) {
	return uc.repo.MarkRead(ctx, inboxFor(actor), time.Now())
}

// Archive oculta una notificación de la bandeja.
func (uc *UseCase) Archive(ctx context.Context, actor entity.Actor, id string) error {
	ok, err := uc.repo.Archive(ctx, id, inboxFor(actor))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// SendInput aviso manual a un usuario.
type SendInput struct {
	UserID  string
	Message string
}

// Send aviso manual (tipo Alert) de MMG o Super_Admin a un usuario.
func (uc *UseCase) Send(ctx context.Context, actor entity.Actor, in SendInput) error {
	if !actor.Is(entity.RoleMMGInventoryHolder, entity.RoleSuperAdmin) {
		return fmt.Errorf("%w: rol %q", domain.ErrForbidden, actor.Role)
	}
	in.UserID = strings.TrimSpace(in.UserID)
	in.Message = strings.TrimSpace(in.Message)
	if in.UserID == "" {
		return domain.NewValidationError("user_id", "requerido")
	}
	if in.Message == "" {
		return domain.NewValidationError("message", "requerido")
	}
	if err := uc.dispatcher.Notify(ctx, entity.NotificationEvent{
		Type:      entity.NotificationAlert,
		Message:   in.Message,
		Recipient: in.UserID,
		CreatedBy: actor.ID,
	}); err != nil {
		return err
	}
	uc.log.Info().Str("to", in.UserID).Str("from", actor.ID).Msg("aviso enviado")
	return nil
}
