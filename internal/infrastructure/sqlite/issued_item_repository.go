package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.IssuedItemRepository = (*IssuedItemRepo)(nil)

const issuedItemColumns = `id, item_name, category, quantity, ledger_number, issued_to, approved_by,
	department_approved_by, approved_date, returned, return_date, department, related_request_id, created_at`

// IssuedItemRepo implementación de IssuedItemRepository sobre SQLite.
type IssuedItemRepo struct {
	q Querier
}

// NewIssuedItemRepository pasar *sql.DB o *sql.Tx.
func NewIssuedItemRepository(q Querier) *IssuedItemRepo {
	return &IssuedItemRepo{q: q}
}

func scanIssuedItem(row scanner) (*entity.IssuedItem, error) {
	var (
		it                entity.IssuedItem
		approved, created string
		returnDate        sql.NullString
	)
	err := row.Scan(&it.ID, &it.ItemName, &it.Category, &it.Quantity, &it.LedgerNumber, &it.IssuedTo,
		&it.ApprovedBy, &it.DepartmentApprovedBy, &approved, &it.Returned, &returnDate,
		&it.Department, &it.RelatedRequestID, &created)
	if err != nil {
		return nil, err
	}
	if it.ApprovedDate, err = parseTime(approved); err != nil {
		return nil, err
	}
	if it.ReturnDate, err = parseNullTime(returnDate); err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste el artículo entregado.
func (r *IssuedItemRepo) Create(ctx context.Context, it *entity.IssuedItem) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO issued_items (id, item_name, category, quantity, ledger_number, issued_to, approved_by,
			department_approved_by, approved_date, returned, department, related_request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		it.ID, it.ItemName, it.Category, it.Quantity, it.LedgerNumber, it.IssuedTo, it.ApprovedBy,
		it.DepartmentApprovedBy, formatTime(it.ApprovedDate), it.Department, it.RelatedRequestID, formatTime(it.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert issued item: %w", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *IssuedItemRepo) GetByID(ctx context.Context, id string) (*entity.IssuedItem, error) {
	it, err := scanIssuedItem(r.q.QueryRowContext(ctx, `SELECT `+issuedItemColumns+` FROM issued_items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issued item: %w", err)
	}
	return it, nil
}

// Delete compensación de una emisión incompleta.
func (r *IssuedItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM issued_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete issued item: %w", err)
	}
	return nil
}

// MarkReturned returned = 1 solo si era 0.
func (r *IssuedItemRepo) MarkReturned(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE issued_items SET returned = 1, return_date = ? WHERE id = ? AND returned = 0`, formatTime(at), id)
	if err != nil {
		return false, fmt.Errorf("mark issued item returned: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark issued item returned: %w", err)
	}
	return n > 0, nil
}

// ClearReturned deshace MarkReturned.
func (r *IssuedItemRepo) ClearReturned(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx,
		`UPDATE issued_items SET returned = 0, return_date = NULL WHERE id = ?`, id); err != nil {
		return fmt.Errorf("clear issued item returned: %w", err)
	}
	return nil
}

// ListByUser artículos entregados al usuario.
func (r *IssuedItemRepo) ListByUser(ctx context.Context, userID string, includeReturned bool) ([]*entity.IssuedItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+issuedItemColumns+` FROM issued_items
		WHERE issued_to = ? AND (? OR returned = 0)
		ORDER BY approved_date DESC`, userID, includeReturned)
	if err != nil {
		return nil, fmt.Errorf("list issued items: %w", err)
	}
	defer rows.Close()
	var list []*entity.IssuedItem
	for rows.Next() {
		it, err := scanIssuedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issued item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
