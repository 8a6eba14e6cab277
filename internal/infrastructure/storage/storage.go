// Package storage abre el motor de persistencia configurado y expone sus repositorios.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-mmg/pkg/config"
)

// Storage repositorios fuera de transacción más el TxRunner del flujo.
type Storage struct {
	Driver        string
	TxRunner      workflow.TxRunner
	Stock         repository.StockRepository
	Notifications repository.NotificationRepository
	close         func()
}

// Open conecta y aplica el esquema. El llamador debe invocar Close.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		return &Storage{
			Driver:        cfg.Storage.Driver,
			TxRunner:      sqlite.NewTxRunner(db),
			Stock:         sqlite.NewStockRepository(db),
			Notifications: sqlite.NewNotificationRepository(db),
			close:         func() { _ = db.Close() },
		}, nil
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Storage{
			Driver:        cfg.Storage.Driver,
			TxRunner:      postgres.NewTxRunner(pool),
			Stock:         postgres.NewStockRepository(pool),
			Notifications: postgres.NewNotificationRepository(pool),
			close:         pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Storage.Driver)
}

// Close libera la conexión.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}
