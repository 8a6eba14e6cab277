package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ workflow.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run abre la tx, pasa repos atados a ella y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	requests repository.RequestRepository,
	items repository.IssuedItemRepository,
	stock repository.StockRepository,
	notifications repository.NotificationRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(
		NewRequestRepository(tx),
		NewIssuedItemRepository(tx),
		NewStockRepository(tx),
		NewNotificationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
