package repository

import (
	"context"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// StockRepository puerto del libro de stock. Credit y Debit son actualizaciones atómicas
// de una sola sentencia; nunca leer-y-escribir por separado.
type StockRepository interface {
	// Credit suma entry.Quantity a (ItemName, Department) o crea la entrada con entry.LedgerNumber.
	// created=true si la fila es nueva. Un ledger duplicado devuelve domain.ErrDuplicate.
	Credit(ctx context.Context, entry *entity.StockEntry) (result *entity.StockEntry, created bool, err error)
	// Debit resta qty solo si hay suficiente; si no, *domain.InsufficientStockError y la fila queda intacta.
	Debit(ctx context.Context, itemName, department string, qty int) (*entity.StockEntry, error)
	Find(ctx context.Context, itemName, department string) (*entity.StockEntry, error)
	GetByLedger(ctx context.Context, ledgerNumber string) (*entity.StockEntry, error)
	List(ctx context.Context, department string, limit, offset int) ([]*entity.StockEntry, error)
	Delete(ctx context.Context, ledgerNumber string) (bool, error)
}
