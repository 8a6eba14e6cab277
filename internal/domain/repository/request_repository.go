package repository

import (
	"context"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// RequestRepository puerto de persistencia de solicitudes.
// GetByID devuelve (nil, nil) si no existe.
type RequestRepository interface {
	Create(ctx context.Context, r *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	// Transition aplica patch solo si el estado almacenado sigue siendo expected.
	// Devuelve (nil, nil) si la condición no se cumplió.
	Transition(ctx context.Context, id string, expected entity.RequestStatus, patch entity.RequestPatch) (*entity.Request, error)
	// DeletePending elimina la solicitud si pertenece a requestedBy y sigue Pending.
	DeletePending(ctx context.Context, id, requestedBy string) (bool, error)
	ListByRequester(ctx context.Context, userID string) ([]*entity.Request, error)
	ListByStatus(ctx context.Context, department string, statuses ...entity.RequestStatus) ([]*entity.Request, error)
	HasOpenReturn(ctx context.Context, issuedItemID string) (bool, error)
}
