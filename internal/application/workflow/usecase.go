// Package workflow casos de uso del flujo solicitud -> aprobación -> emisión -> devolución.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/ledger"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
	flow "github.com/jhoicas/inventario-mmg/internal/domain/workflow"
)

// Options dependencias opcionales del caso de uso.
type Options struct {
	CentralDepartment string // por defecto catalog.CentralDepartment
	Ledger            *ledger.Generator
	Logger            zerolog.Logger
	Recorder          Recorder
	Now               func() time.Time
}

// UseCase ejecuta las transiciones del flujo. Cada transición es una unidad dentro del TxRunner;
// las notificaciones se despachan después del commit.
type UseCase struct {
	tx       TxRunner
	catalog  *catalog.Catalog
	notifier Notifier
	central  string
	ledger   *ledger.Generator
	log      zerolog.Logger
	rec      Recorder
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, cat *catalog.Catalog, notifier Notifier, opts Options) *UseCase {
	uc := &UseCase{
		tx:       tx,
		catalog:  cat,
		notifier: notifier,
		central:  opts.CentralDepartment,
		ledger:   opts.Ledger,
		log:      opts.Logger.With().Str("component", "workflow").Logger(),
		rec:      opts.Recorder,
		now:      opts.Now,
	}
	if uc.central == "" {
		uc.central = catalog.CentralDepartment
	}
	if uc.ledger == nil {
		uc.ledger = ledger.NewGenerator()
	}
	if uc.rec == nil {
		uc.rec = nopRecorder{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// CreateRequestInput datos de una solicitud nueva; el departamento es el del actor.
type CreateRequestInput struct {
	ItemName string
	Category string
	Quantity int
}

// Issuance resultado de una aprobación MMG o de una devolución aprobada.
type Issuance struct {
	Request    *entity.Request
	IssuedItem *entity.IssuedItem
	Stock      *entity.StockEntry
}

// CreateRequest valida todo antes de escribir y deja la solicitud en Pending.
func (uc *UseCase) CreateRequest(ctx context.Context, actor entity.Actor, in CreateRequestInput) (*entity.Request, error) {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.Category = strings.TrimSpace(in.Category)
	switch {
	case actor.ID == "":
		return nil, domain.NewValidationError("requested_by", "requerido")
	case in.ItemName == "":
		return nil, domain.NewValidationError("item_name", "requerido")
	case in.Category == "":
		return nil, domain.NewValidationError("category", "requerido")
	case in.Quantity < 1:
		return nil, domain.NewValidationError("quantity", "debe ser mayor o igual a 1")
	case !catalog.ValidDepartment(actor.Department):
		return nil, domain.NewValidationError("department", fmt.Sprintf("departamento desconocido %q", actor.Department))
	}
	if err := uc.catalog.Check(in.Category, in.ItemName); err != nil {
		return nil, err
	}

	now := uc.now()
	req := &entity.Request{
		ID:          uuid.New().String(),
		ItemName:    in.ItemName,
		Category:    in.Category,
		Quantity:    in.Quantity,
		RequestedBy: actor.ID,
		Department:  actor.Department,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository,
		_ repository.StockRepository, _ repository.NotificationRepository) error {
		return requests.Create(ctx, req)
	})
	if err != nil {
		return nil, uc.fail("create", err)
	}
	uc.done("create", req)
	uc.notify(ctx, entity.NotificationEvent{
		Type:             entity.NotificationRequest,
		Message:          fmt.Sprintf("Nueva solicitud de %d x %s (%s)", req.Quantity, req.ItemName, req.Category),
		RecipientRole:    entity.RoleInventoryHolder,
		Department:       req.Department,
		RelatedRequestID: req.ID,
		CreatedBy:        actor.ID,
	})
	return req, nil
}

// ApproveAtDepartment Pending -> Department Approved por el holder del mismo departamento.
func (uc *UseCase) ApproveAtDepartment(ctx context.Context, actor entity.Actor, requestID string) (*entity.Request, error) {
	if err := requireRole(actor, entity.RoleInventoryHolder); err != nil {
		return nil, err
	}
	var updated *entity.Request
	err := uc.tx.Run(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository,
		_ repository.StockRepository, _ repository.NotificationRepository) error {
		req, err := loadRequest(ctx, requests, requestID)
		if err != nil {
			return err
		}
		if req.Department != actor.Department {
			return fmt.Errorf("%w: la solicitud pertenece a %s", domain.ErrForbidden, req.Department)
		}
		if err := flow.DepartmentApprove.Check(req.Status); err != nil {
			return err
		}
		now := uc.now()
		updated, err = requests.Transition(ctx, req.ID, req.Status, entity.RequestPatch{
			Status:                 flow.DepartmentApprove.To,
			DepartmentApprovedBy:   actor.ID,
			DepartmentApprovalDate: &now,
			UpdatedAt:              now,
		})
		return staleIfNil(updated, err)
	})
	if err != nil {
		return nil, uc.fail(flow.DepartmentApprove.Name, err)
	}
	uc.done(flow.DepartmentApprove.Name, updated)
	uc.notify(ctx, entity.NotificationEvent{
		Type:             entity.NotificationApproval,
		Message:          fmt.Sprintf("Solicitud de %d x %s aprobada por %s; pendiente de aprobación MMG", updated.Quantity, updated.ItemName, updated.Department),
		RecipientRole:    entity.RoleMMGInventoryHolder,
		RelatedRequestID: updated.ID,
		CreatedBy:        actor.ID,
	})
	return updated, nil
}

// ApproveAtMMG Department Approved -> MMG Approved. Orden: débito del stock central,
// creación del IssuedItem y actualización condicional de la solicitud. Cada paso aplicado
// registra su compensación.
func (uc *UseCase) ApproveAtMMG(ctx context.Context, actor entity.Actor, requestID, ledgerNumber string) (*Issuance, error) {
	if err := requireRole(actor, entity.RoleMMGInventoryHolder); err != nil {
		return nil, err
	}
	ledgerNumber, err := ledger.Normalize(ledgerNumber)
	if err != nil {
		return nil, err
	}

	var out Issuance
	err = uc.tx.Run(ctx, func(requests repository.RequestRepository, items repository.IssuedItemRepository,
		stock repository.StockRepository, _ repository.NotificationRepository) error {
		req, err := loadRequest(ctx, requests, requestID)
		if err != nil {
			return err
		}
		if err := flow.MMGApprove.Check(req.Status); err != nil {
			return err
		}
		if ledgerNumber == "" {
			ledgerNumber = uc.ledger.Next()
		}

		undo := compensations{log: uc.log.With().Str("request_id", req.ID).Logger(), rec: uc.rec}
		fail := func(err error) error {
			undo.unwind(ctx, err)
			return err
		}

		entry, err := stock.Debit(ctx, req.ItemName, uc.central, req.Quantity)
		if err != nil {
			return err
		}
		undo.push("recredit-stock", func(ctx context.Context) error {
			_, _, err := stock.Credit(ctx, &entity.StockEntry{
				LedgerNumber: entry.LedgerNumber,
				ItemName:     entry.ItemName,
				Category:     entry.Category,
				Quantity:     req.Quantity,
				Department:   entry.Department,
			})
			return err
		})

		now := uc.now()
		item := &entity.IssuedItem{
			ID:                   uuid.New().String(),
			ItemName:             req.ItemName,
			Category:             req.Category,
			Quantity:             req.Quantity,
			LedgerNumber:         ledgerNumber,
			IssuedTo:             req.RequestedBy,
			ApprovedBy:           actor.ID,
			DepartmentApprovedBy: req.DepartmentApprovedBy,
			ApprovedDate:         now,
			Department:           req.Department,
			RelatedRequestID:     req.ID,
			CreatedAt:            now,
		}
		if err := items.Create(ctx, item); err != nil {
			return fail(err)
		}
		undo.push("delete-issued-item", func(ctx context.Context) error {
			return items.Delete(ctx, item.ID)
		})

		updated, err := requests.Transition(ctx, req.ID, req.Status, entity.RequestPatch{
			Status:          flow.MMGApprove.To,
			ApprovedBy:      actor.ID,
			LedgerNumber:    ledgerNumber,
			IssuedItemID:    item.ID,
			MMGApprovalDate: &now,
			UpdatedAt:       now,
		})
		if err := staleIfNil(updated, err); err != nil {
			return fail(err)
		}
		out = Issuance{Request: updated, IssuedItem: item, Stock: entry}
		return nil
	})
	if err != nil {
		return nil, uc.fail(flow.MMGApprove.Name, err)
	}
	uc.done(flow.MMGApprove.Name, out.Request)
	uc.notify(ctx, entity.NotificationEvent{
		Type: entity.NotificationApproval,
		Message: fmt.Sprintf("Su solicitud de %d x %s fue aprobada por MMG (ledger %s)",
			out.IssuedItem.Quantity, out.IssuedItem.ItemName, out.IssuedItem.LedgerNumber),
		Recipient:           out.Request.RequestedBy,
		RelatedRequestID:    out.Request.ID,
		RelatedIssuedItemID: out.IssuedItem.ID,
		CreatedBy:           actor.ID,
	})
	return &out, nil
}

// RejectRequest Pending | Department Approved -> Rejected. El motivo es obligatorio.
// Un holder solo rechaza solicitudes de su departamento.
func (uc *UseCase) RejectRequest(ctx context.Context, actor entity.Actor, requestID, reason string) (*entity.Request, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "el motivo de rechazo es obligatorio")
	}
	if err := requireRole(actor, entity.RoleInventoryHolder, entity.RoleMMGInventoryHolder); err != nil {
		return nil, err
	}
	var updated *entity.Request
	err := uc.tx.Run(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository,
		_ repository.StockRepository, _ repository.NotificationRepository) error {
		req, err := loadRequest(ctx, requests, requestID)
		if err != nil {
			return err
		}
		if actor.Role == entity.RoleInventoryHolder && req.Department != actor.Department {
			return fmt.Errorf("%w: la solicitud pertenece a %s", domain.ErrForbidden, req.Department)
		}
		if err := flow.Reject.Check(req.Status); err != nil {
			return err
		}
		now := uc.now()
		updated, err = requests.Transition(ctx, req.ID, req.Status, entity.RequestPatch{
			Status:          flow.Reject.To,
			RejectedBy:      actor.ID,
			RejectionReason: reason,
			RejectedDate:    &now,
			UpdatedAt:       now,
		})
		return staleIfNil(updated, err)
	})
	if err != nil {
		return nil, uc.fail(flow.Reject.Name, err)
	}
	uc.done(flow.Reject.Name, updated)
	uc.notify(ctx, entity.NotificationEvent{
		Type:             entity.NotificationRejection,
		Message:          fmt.Sprintf("Su solicitud de %d x %s fue rechazada. Motivo: %s", updated.Quantity, updated.ItemName, reason),
		Recipient:        updated.RequestedBy,
		RelatedRequestID: updated.ID,
		CreatedBy:        actor.ID,
	})
	return updated, nil
}

// CancelRequest elimina una solicitud Pending de su dueño junto con sus notificaciones no leídas.
func (uc *UseCase) CancelRequest(ctx context.Context, actor entity.Actor, requestID string) error {
	err := uc.tx.Run(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository,
		_ repository.StockRepository, notifications repository.NotificationRepository) error {
		deleted, err := requests.DeletePending(ctx, requestID, actor.ID)
		if err != nil {
			return err
		}
		if !deleted {
			req, err := requests.GetByID(ctx, requestID)
			if err != nil {
				return err
			}
			switch {
			case req == nil || req.RequestedBy != actor.ID:
				return domain.ErrNotFound
			case flow.CanCancel(req.Status):
				return domain.ErrStaleState
			default:
				return fmt.Errorf("%w: solo se cancelan solicitudes Pending (estado actual %q)",
					domain.ErrInvalidStatusTransition, req.Status)
			}
		}
		_, err = notifications.DeletePendingByRequest(ctx, requestID)
		return err
	})
	if err != nil {
		return uc.fail("cancel", err)
	}
	uc.rec.Transition("cancel", "ok")
	uc.log.Info().Str("request_id", requestID).Str("actor", actor.ID).Msg("solicitud cancelada")
	return nil
}

// CreateReturnRequest abre una devolución (Return Pending) sobre un artículo entregado al actor.
func (uc *UseCase) CreateReturnRequest(ctx context.Context, actor entity.Actor, issuedItemID string) (*entity.Request, error) {
	var req *entity.Request
	err := uc.tx.Run(ctx, func(requests repository.RequestRepository, items repository.IssuedItemRepository,
		_ repository.StockRepository, _ repository.NotificationRepository) error {
		item, err := items.GetByID(ctx, issuedItemID)
		if err != nil {
			return err
		}
		if item == nil || item.IssuedTo != actor.ID {
			return domain.ErrNotFound
		}
		if item.Returned {
			return fmt.Errorf("%w: el artículo ya fue devuelto", domain.ErrInvalidStatusTransition)
		}
		open, err := requests.HasOpenReturn(ctx, item.ID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: ya existe una devolución pendiente", domain.ErrInvalidStatusTransition)
		}
		now := uc.now()
		req = &entity.Request{
			ID:                  uuid.New().String(),
			ItemName:            item.ItemName,
			Category:            item.Category,
			Quantity:            item.Quantity,
			RequestedBy:         actor.ID,
			Department:          item.Department,
			Status:              entity.StatusReturnPending,
			LedgerNumber:        item.LedgerNumber,
			RelatedIssuedItemID: item.ID,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		return requests.Create(ctx, req)
	})
	if err != nil {
		return nil, uc.fail("create-return", err)
	}
	uc.done("create-return", req)
	uc.notify(ctx, entity.NotificationEvent{
		Type:                entity.NotificationReturnRequest,
		Message:             fmt.Sprintf("Devolución solicitada: %d x %s (ledger %s)", req.Quantity, req.ItemName, req.LedgerNumber),
		RecipientRole:       entity.RoleMMGInventoryHolder,
		RelatedRequestID:    req.ID,
		RelatedIssuedItemID: req.RelatedIssuedItemID,
		CreatedBy:           actor.ID,
	})
	return req, nil
}

// ApproveReturn Return Pending -> Return Approved. Orden: marcar el IssuedItem como devuelto,
// acreditar el stock central y actualizar la solicitud.
func (uc *UseCase) ApproveReturn(ctx context.Context, actor entity.Actor, requestID string) (*Issuance, error) {
	if err := requireRole(actor, entity.RoleMMGInventoryHolder); err != nil {
		return nil, err
	}
	var out Issuance
	err := uc.tx.Run(ctx, func(requests repository.RequestRepository, items repository.IssuedItemRepository,
		stock repository.StockRepository, _ repository.NotificationRepository) error {
		req, err := loadRequest(ctx, requests, requestID)
		if err != nil {
			return err
		}
		if err := flow.ReturnApprove.Check(req.Status); err != nil {
			return err
		}
		item, err := items.GetByID(ctx, req.RelatedIssuedItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: artículo entregado %s", domain.ErrNotFound, req.RelatedIssuedItemID)
		}

		undo := compensations{log: uc.log.With().Str("request_id", req.ID).Logger(), rec: uc.rec}
		fail := func(err error) error {
			undo.unwind(ctx, err)
			return err
		}

		now := uc.now()
		marked, err := items.MarkReturned(ctx, item.ID, now)
		if err != nil {
			return err
		}
		if !marked {
			return domain.ErrStaleState
		}
		undo.push("clear-returned", func(ctx context.Context) error {
			return items.ClearReturned(ctx, item.ID)
		})

		entry, _, err := stock.Credit(ctx, &entity.StockEntry{
			LedgerNumber: uc.ledger.Next(),
			ItemName:     item.ItemName,
			Category:     item.Category,
			Quantity:     item.Quantity,
			Department:   uc.central,
		})
		if err != nil {
			return fail(err)
		}
		undo.push("debit-stock", func(ctx context.Context) error {
			_, err := stock.Debit(ctx, item.ItemName, uc.central, item.Quantity)
			return err
		})

		updated, err := requests.Transition(ctx, req.ID, req.Status, entity.RequestPatch{
			Status:     flow.ReturnApprove.To,
			ApprovedBy: actor.ID,
			ReturnDate: &now,
			UpdatedAt:  now,
		})
		if err := staleIfNil(updated, err); err != nil {
			return fail(err)
		}
		item.Returned = true
		item.ReturnDate = &now
		out = Issuance{Request: updated, IssuedItem: item, Stock: entry}
		return nil
	})
	if err != nil {
		return nil, uc.fail(flow.ReturnApprove.Name, err)
	}
	uc.done(flow.ReturnApprove.Name, out.Request)
	uc.notify(ctx, entity.NotificationEvent{
		Type:                entity.NotificationReturnApproval,
		Message:             fmt.Sprintf("Devolución aprobada: %d x %s reingresó al stock", out.IssuedItem.Quantity, out.IssuedItem.ItemName),
		Recipient:           out.Request.RequestedBy,
		RelatedRequestID:    out.Request.ID,
		RelatedIssuedItemID: out.IssuedItem.ID,
		CreatedBy:           actor.ID,
	})
	return &out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func requireRole(actor entity.Actor, roles ...entity.Role) error {
	if actor.ID == "" {
		return domain.ErrUnauthorized
	}
	if !actor.Is(roles...) {
		return fmt.Errorf("%w: rol %q", domain.ErrForbidden, actor.Role)
	}
	return nil
}

func loadRequest(ctx context.Context, requests repository.RequestRepository, id string) (*entity.Request, error) {
	req, err := requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, id)
	}
	return req, nil
}

// staleIfNil traduce la actualización condicional sin filas afectadas a ErrStaleState.
func staleIfNil(updated *entity.Request, err error) error {
	if err != nil {
		return err
	}
	if updated == nil {
		return domain.ErrStaleState
	}
	return nil
}

func (uc *UseCase) done(transition string, req *entity.Request) {
	uc.rec.Transition(transition, "ok")
	uc.log.Info().
		Str("transition", transition).
		Str("request_id", req.ID).
		Str("status", string(req.Status)).
		Msg("transición aplicada")
}

func (uc *UseCase) fail(transition string, err error) error {
	uc.rec.Transition(transition, Outcome(err))
	ev := uc.log.Debug()
	if Outcome(err) == "error" {
		ev = uc.log.Error()
	}
	ev.Err(err).Str("transition", transition).Msg("transición rechazada")
	return err
}

// notify despacha el evento; un fallo se registra y se descarta.
func (uc *UseCase) notify(ctx context.Context, ev entity.NotificationEvent) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, ev); err != nil {
		uc.rec.NotificationFailed(ev.Type)
		uc.log.Warn().Err(err).
			Str("type", string(ev.Type)).
			Str("request_id", ev.RelatedRequestID).
			Msg("no se pudo entregar la notificación")
	}
}

// Outcome etiqueta corta del error para métricas y logs.
func Outcome(err error) string {
	var insufficient *domain.InsufficientStockError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &insufficient):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrStaleState):
		return "stale_state"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidItem):
		return "invalid_input"
	}
	return "error"
}
