package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `ledger_number, item_name, category, quantity, department, created_at, updated_at`

// StockRepo implementación de StockRepository sobre SQLite.
type StockRepo struct {
	q   Querier
	now func() time.Time
}

// NewStockRepository pasar *sql.DB o *sql.Tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q, now: time.Now}
}

func scanStock(row scanner) (*entity.StockEntry, error) {
	var s entity.StockEntry
	var created, updated string
	if err := row.Scan(&s.LedgerNumber, &s.ItemName, &s.Category, &s.Quantity, &s.Department, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if s.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &s, nil
}

// Credit upsert (ON CONFLICT DO UPDATE). created se determina antes del upsert dentro de la misma conexión.
func (r *StockRepo) Credit(ctx context.Context, e *entity.StockEntry) (*entity.StockEntry, bool, error) {
	existing, err := r.Find(ctx, e.ItemName, e.Department)
	if err != nil {
		return nil, false, err
	}
	now := formatTime(r.now())
	query := `
		INSERT INTO stock (ledger_number, item_name, category, quantity, department, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_name, department)
		DO UPDATE SET quantity = stock.quantity + excluded.quantity, updated_at = excluded.updated_at
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRowContext(ctx, query, e.LedgerNumber, e.ItemName, e.Category, e.Quantity, e.Department, now, now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("%w: ledger %s", domain.ErrDuplicate, e.LedgerNumber)
		}
		return nil, false, fmt.Errorf("credit stock: %w", err)
	}
	return s, existing == nil, nil
}

// Debit UPDATE condicionado a quantity >= qty.
func (r *StockRepo) Debit(ctx context.Context, itemName, department string, qty int) (*entity.StockEntry, error) {
	query := `
		UPDATE stock SET quantity = quantity - ?, updated_at = ?
		WHERE item_name = ? AND department = ? AND quantity >= ?
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRowContext(ctx, query, qty, formatTime(r.now()), itemName, department, qty))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
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

// Find nil si no existe.
func (r *StockRepo) Find(ctx context.Context, itemName, department string) (*entity.StockEntry, error) {
	s, err := scanStock(r.q.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE item_name = ? AND department = ?`, itemName, department))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return s, nil
}

// GetByLedger nil si no existe.
func (r *StockRepo) GetByLedger(ctx context.Context, ledgerNumber string) (*entity.StockEntry, error) {
	s, err := scanStock(r.q.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE ledger_number = ?`, ledgerNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by ledger: %w", err)
	}
	return s, nil
}

// List paginado; department vacío lista todos.
func (r *StockRepo) List(ctx context.Context, department string, limit, offset int) ([]*entity.StockEntry, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+stockColumns+` FROM stock
		WHERE (? = '' OR department = ?)
		ORDER BY department, category, item_name LIMIT ? OFFSET ?`, department, department, limit, offset)
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
	res, err := r.q.ExecContext(ctx, `DELETE FROM stock WHERE ledger_number = ?`, ledgerNumber)
	if err != nil {
		return false, fmt.Errorf("delete stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete stock: %w", err)
	}
	return n > 0, nil
}
