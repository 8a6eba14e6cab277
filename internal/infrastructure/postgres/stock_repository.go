package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `ledger_number, item_name, category, quantity, department, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row, extra ...any) (*entity.StockEntry, error) {
	var s entity.StockEntry
	dest := append([]any{&s.LedgerNumber, &s.ItemName, &s.Category, &s.Quantity, &s.Department, &s.CreatedAt, &s.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

// Credit upsert atómico: suma a la fila (item, departamento) o la crea con el ledger indicado.
func (r *StockRepo) Credit(ctx context.Context, e *entity.StockEntry) (*entity.StockEntry, bool, error) {
	query := `
		INSERT INTO stock (ledger_number, item_name, category, quantity, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (item_name, department)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING ` + stockColumns + `, (xmax = 0) AS inserted`
	var inserted bool
	s, err := scanStock(r.q.QueryRow(ctx, query, e.LedgerNumber, e.ItemName, e.Category, e.Quantity, e.Department), &inserted)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("%w: ledger %s", domain.ErrDuplicate, e.LedgerNumber)
		}
		return nil, false, fmt.Errorf("credit stock: %w", err)
	}
	return s, inserted, nil
}

// Debit resta solo si quantity >= qty en la misma sentencia; si no afecta filas, informa lo disponible.
func (r *StockRepo) Debit(ctx context.Context, itemName, department string, qty int) (*entity.StockEntry, error) {
	query := `
		UPDATE stock SET quantity = quantity - $3, updated_at = now()
		WHERE item_name = $1 AND department = $2 AND quantity >= $3
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, itemName, department, qty))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isCheckViolation(err) {
			return nil, &domain.InsufficientStockError{ItemName: itemName, Department: department, Requested: qty}
		}
		return nil, fmt.Errorf("debit stock: %w", err)
	}
	available := 0
	cur, err := r.Find(ctx, itemName, department)
	if err != nil {
		return nil, err
	}
	if cur != nil {
		available = cur.Quantity
	}
	return nil, &domain.InsufficientStockError{ItemName: itemName, Department: department, Requested: qty, Available: available}
}

// Find entrada de (item, departamento); nil si no existe.
func (r *StockRepo) Find(ctx context.Context, itemName, department string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE item_name = $1 AND department = $2`
	s, err := scanStock(r.q.QueryRow(ctx, query, itemName, department))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return s, nil
}

// GetByLedger entrada por número de ledger; nil si no existe.
func (r *StockRepo) GetByLedger(ctx context.Context, ledgerNumber string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE ledger_number = $1`
	s, err := scanStock(r.q.QueryRow(ctx, query, ledgerNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by ledger: %w", err)
	}
	return s, nil
}

// List paginado; department vacío lista todos.
func (r *StockRepo) List(ctx context.Context, department string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stock
		WHERE ($1 = '' OR department = $1)
		ORDER BY department, category, item_name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, department, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete baja administrativa.
func (r *StockRepo) Delete(ctx context.Context, ledgerNumber string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock WHERE ledger_number = $1`, ledgerNumber)
	if err != nil {
		return false, fmt.Errorf("delete stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
