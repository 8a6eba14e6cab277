package workflow

import (
	"context"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el movimiento de stock y el cambio de la solicitud se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requests repository.RequestRepository,
		items repository.IssuedItemRepository,
		stock repository.StockRepository,
		notifications repository.NotificationRepository,
	) error) error
}

// Notifier recibe un evento por transición. Se invoca después del commit;
// su error se registra y nunca revierte la transición.
type Notifier interface {
	Notify(ctx context.Context, ev entity.NotificationEvent) error
}

// Recorder métricas del flujo. outcome: "ok" o el código de error.
type Recorder interface {
	Transition(name, outcome string)
	Compensation(step string, err error)
	NotificationFailed(kind entity.NotificationType)
}

type nopRecorder struct{}

func (nopRecorder) Transition(string, string)                  {}
func (nopRecorder) Compensation(string, error)                 {}
func (nopRecorder) NotificationFailed(entity.NotificationType) {}
