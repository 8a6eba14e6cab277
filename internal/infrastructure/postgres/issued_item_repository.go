package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.IssuedItemRepository = (*IssuedItemRepo)(nil)

const issuedItemColumns = `id, item_name, category, quantity, ledger_number, issued_to, approved_by,
	department_approved_by, approved_date, returned, return_date, department, related_request_id, created_at`

// IssuedItemRepo implementación de IssuedItemRepository sobre PostgreSQL.
type IssuedItemRepo struct {
	q Querier
}

// NewIssuedItemRepository pasar pool o tx (Querier).
func NewIssuedItemRepository(q Querier) *IssuedItemRepo {
	return &IssuedItemRepo{q: q}
}

func scanIssuedItem(row pgx.Row) (*entity.IssuedItem, error) {
	var it entity.IssuedItem
	err := row.Scan(&it.ID, &it.ItemName, &it.Category, &it.Quantity, &it.LedgerNumber, &it.IssuedTo,
		&it.ApprovedBy, &it.DepartmentApprovedBy, &it.ApprovedDate, &it.Returned, &it.ReturnDate,
		&it.Department, &it.RelatedRequestID, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste el artículo entregado.
func (r *IssuedItemRepo) Create(ctx context.Context, it *entity.IssuedItem) error {
	query := `
		INSERT INTO issued_items (id, item_name, category, quantity, ledger_number, issued_to, approved_by,
			department_approved_by, approved_date, returned, department, related_request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, it.ID, it.ItemName, it.Category, it.Quantity, it.LedgerNumber, it.IssuedTo,
		it.ApprovedBy, it.DepartmentApprovedBy, it.ApprovedDate, it.Department, it.RelatedRequestID, it.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert issued item: %w", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *IssuedItemRepo) GetByID(ctx context.Context, id string) (*entity.IssuedItem, error) {
	it, err := scanIssuedItem(r.q.QueryRow(ctx, `SELECT `+issuedItemColumns+` FROM issued_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issued item: %w", err)
	}
	return it, nil
}

// Delete elimina el registro (compensación de una emisión incompleta).
func (r *IssuedItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM issued_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete issued item: %w", err)
	}
	return nil
}

// MarkReturned returned = true solo si era false.
func (r *IssuedItemRepo) MarkReturned(ctx context.Context, id string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE issued_items SET returned = true, return_date = $2 WHERE id = $1 AND returned = false`, id, at)
	if err != nil {
		return false, fmt.Errorf("mark issued item returned: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ClearReturned deshace MarkReturned.
func (r *IssuedItemRepo) ClearReturned(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx,
		`UPDATE issued_items SET returned = false, return_date = NULL WHERE id = $1`, id); err != nil {
		return fmt.Errorf("clear issued item returned: %w", err)
	}
	return nil
}

// ListByUser artículos entregados al usuario.
func (r *IssuedItemRepo) ListByUser(ctx context.Context, userID string, includeReturned bool) ([]*entity.IssuedItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+issuedItemColumns+` FROM issued_items
		WHERE issued_to = $1 AND ($2 OR returned = false)
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
