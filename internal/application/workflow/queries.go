package workflow

import (
	"context"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

// read ejecuta fn con repositorios de solo lectura dentro del runner.
func (uc *UseCase) read(ctx context.Context, fn func(requests repository.RequestRepository, items repository.IssuedItemRepository) error) error {
	return uc.tx.Run(ctx, func(requests repository.RequestRepository, items repository.IssuedItemRepository,
		_ repository.StockRepository, _ repository.NotificationRepository) error {
		return fn(requests, items)
	})
}

// canSee: el dueño, el holder del departamento, MMG y Super_Admin.
func canSee(actor entity.Actor, owner, department string) bool {
	switch {
	case actor.ID != "" && actor.ID == owner:
		return true
	case actor.Is(entity.RoleMMGInventoryHolder, entity.RoleSuperAdmin):
		return true
	case actor.Role == entity.RoleInventoryHolder && actor.Department == department:
		return true
	}
	return false
}

// GetRequest solicitud visible para el actor; ErrNotFound en otro caso.
func (uc *UseCase) GetRequest(ctx context.Context, actor entity.Actor, id string) (*entity.Request, error) {
	var req *entity.Request
	err := uc.read(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository) error {
		var err error
		req, err = requests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if req == nil || !canSee(actor, req.RequestedBy, req.Department) {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// ListMyRequests solicitudes del actor (emisiones y devoluciones).
func (uc *UseCase) ListMyRequests(ctx context.Context, actor entity.Actor) ([]*entity.Request, error) {
	var list []*entity.Request
	err := uc.read(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository) error {
		var err error
		list, err = requests.ListByRequester(ctx, actor.ID)
		return err
	})
	return list, err
}

// ListDepartmentPending cola del holder: solicitudes Pending de su departamento.
func (uc *UseCase) ListDepartmentPending(ctx context.Context, actor entity.Actor) ([]*entity.Request, error) {
	if err := requireRole(actor, entity.RoleInventoryHolder); err != nil {
		return nil, err
	}
	var list []*entity.Request
	err := uc.read(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository) error {
		var err error
		list, err = requests.ListByStatus(ctx, actor.Department, entity.StatusPending)
		return err
	})
	return list, err
}

// ListMMGPending cola MMG: aprobadas por departamento y devoluciones pendientes.
func (uc *UseCase) ListMMGPending(ctx context.Context, actor entity.Actor) ([]*entity.Request, error) {
	if err := requireRole(actor, entity.RoleMMGInventoryHolder); err != nil {
		return nil, err
	}
	var list []*entity.Request
	err := uc.read(ctx, func(requests repository.RequestRepository, _ repository.IssuedItemRepository) error {
		var err error
		list, err = requests.ListByStatus(ctx, "", entity.StatusDepartmentApproved, entity.StatusReturnPending)
		return err
	})
	return list, err
}

// ListMyIssuedItems artículos en poder del actor (no devueltos).
func (uc *UseCase) ListMyIssuedItems(ctx context.Context, actor entity.Actor) ([]*entity.IssuedItem, error) {
	var list []*entity.IssuedItem
	err := uc.read(ctx, func(_ repository.RequestRepository, items repository.IssuedItemRepository) error {
		var err error
		list, err = items.ListByUser(ctx, actor.ID, false)
		return err
	})
	return list, err
}

// ListUserIssuedItems historial de un usuario para el holder (solo su departamento).
func (uc *UseCase) ListUserIssuedItems(ctx context.Context, actor entity.Actor, userID string) ([]*entity.IssuedItem, error) {
	if err := requireRole(actor, entity.RoleInventoryHolder, entity.RoleMMGInventoryHolder, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}
	var all []*entity.IssuedItem
	err := uc.read(ctx, func(_ repository.RequestRepository, items repository.IssuedItemRepository) error {
		var err error
		all, err = items.ListByUser(ctx, userID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	list := make([]*entity.IssuedItem, 0, len(all))
	for _, it := range all {
		if canSee(actor, "", it.Department) {
			list = append(list, it)
		}
	}
	return list, nil
}

// GetIssuedItem artículo entregado visible para el actor.
func (uc *UseCase) GetIssuedItem(ctx context.Context, actor entity.Actor, id string) (*entity.IssuedItem, error) {
	var item *entity.IssuedItem
	err := uc.read(ctx, func(_ repository.RequestRepository, items repository.IssuedItemRepository) error {
		var err error
		item, err = items.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if item == nil || !canSee(actor, item.IssuedTo, item.Department) {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
