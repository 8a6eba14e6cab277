package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// IssuedItemRepository puerto de persistencia de artículos entregados.
type IssuedItemRepository interface {
	Create(ctx context.Context, item *entity.IssuedItem) error
	GetByID(ctx context.Context, id string) (*entity.IssuedItem, error)
	Delete(ctx context.Context, id string) error
	// MarkReturned pasa returned a true solo si aún era false.
	MarkReturned(ctx context.Context, id string, at time.Time) (bool, error)
	// ClearReturned revierte MarkReturned; exclusivo de la compensación de una devolución fallida.
	ClearReturned(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, includeReturned bool) ([]*entity.IssuedItem, error)
}
