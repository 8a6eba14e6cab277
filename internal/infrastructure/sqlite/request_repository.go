package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, item_name, category, quantity, requested_by, department, status,
	department_approved_by, approved_by, rejected_by, rejection_reason, ledger_number,
	related_issued_item_id, issued_item_id, department_approval_date, mmg_approval_date,
	rejected_date, return_date, created_at, updated_at`

// RequestRepo implementación de RequestRepository sobre SQLite.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository pasar *sql.DB o *sql.Tx.
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

func scanRequest(row scanner) (*entity.Request, error) {
	var (
		r                          entity.Request
		deptDate, mmgDate, rejDate sql.NullString
		retDate                    sql.NullString
		created, updated           string
	)
	err := row.Scan(
		&r.ID, &r.ItemName, &r.Category, &r.Quantity, &r.RequestedBy, &r.Department, &r.Status,
		&r.DepartmentApprovedBy, &r.ApprovedBy, &r.RejectedBy, &r.RejectionReason, &r.LedgerNumber,
		&r.RelatedIssuedItemID, &r.IssuedItemID, &deptDate, &mmgDate, &rejDate, &retDate, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	if r.DepartmentApprovalDate, err = parseNullTime(deptDate); err != nil {
		return nil, err
	}
	if r.MMGApprovalDate, err = parseNullTime(mmgDate); err != nil {
		return nil, err
	}
	if r.RejectedDate, err = parseNullTime(rejDate); err != nil {
		return nil, err
	}
	if r.ReturnDate, err = parseNullTime(retDate); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRequests(rows *sql.Rows) ([]*entity.Request, error) {
	defer rows.Close()
	var list []*entity.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// Create persiste una solicitud nueva.
func (r *RequestRepo) Create(ctx context.Context, req *entity.Request) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO requests (id, item_name, category, quantity, requested_by, department, status,
			related_issued_item_id, ledger_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.ItemName, req.Category, req.Quantity, req.RequestedBy, req.Department, string(req.Status),
		req.RelatedIssuedItemID, req.LedgerNumber, formatTime(req.CreatedAt), formatTime(req.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una devolución abierta para el artículo", domain.ErrInvalidStatusTransition)
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	req, err := scanRequest(r.q.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// Transition UPDATE ... WHERE id AND status = expected.
func (r *RequestRepo) Transition(ctx context.Context, id string, expected entity.RequestStatus, p entity.RequestPatch) (*entity.Request, error) {
	query := `
		UPDATE requests SET
			status = ?,
			department_approved_by = COALESCE(NULLIF(?, ''), department_approved_by),
			approved_by = COALESCE(NULLIF(?, ''), approved_by),
			rejected_by = COALESCE(NULLIF(?, ''), rejected_by),
			rejection_reason = COALESCE(NULLIF(?, ''), rejection_reason),
			ledger_number = COALESCE(NULLIF(?, ''), ledger_number),
			issued_item_id = COALESCE(NULLIF(?, ''), issued_item_id),
			department_approval_date = COALESCE(?, department_approval_date),
			mmg_approval_date = COALESCE(?, mmg_approval_date),
			rejected_date = COALESCE(?, rejected_date),
			return_date = COALESCE(?, return_date),
			updated_at = ?
		WHERE id = ? AND status = ?
		RETURNING ` + requestColumns
	req, err := scanRequest(r.q.QueryRowContext(ctx, query, string(p.Status),
		p.DepartmentApprovedBy, p.ApprovedBy, p.RejectedBy, p.RejectionReason, p.LedgerNumber, p.IssuedItemID,
		formatTimePtr(p.DepartmentApprovalDate), formatTimePtr(p.MMGApprovalDate),
		formatTimePtr(p.RejectedDate), formatTimePtr(p.ReturnDate), formatTime(p.UpdatedAt),
		id, string(expected),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("transition request: %w", err)
	}
	return req, nil
}

// DeletePending borrado condicional (dueño + Pending).
func (r *RequestRepo) DeletePending(ctx context.Context, id, requestedBy string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM requests WHERE id = ? AND requested_by = ? AND status = ?`,
		id, requestedBy, string(entity.StatusPending))
	if err != nil {
		return false, fmt.Errorf("delete request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete request: %w", err)
	}
	return n > 0, nil
}

// ListByRequester solicitudes de un usuario, recientes primero.
func (r *RequestRepo) ListByRequester(ctx context.Context, userID string) ([]*entity.Request, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE requested_by = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return collectRequests(rows)
}

// ListByStatus solicitudes en alguno de los estados; department vacío = todos.
func (r *RequestRepo) ListByStatus(ctx context.Context, department string, statuses ...entity.RequestStatus) ([]*entity.Request, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	args := []any{department, department}
	for _, s := range statuses {
		args = append(args, string(s))
	}
	query := `SELECT ` + requestColumns + ` FROM requests
		WHERE (? = '' OR department = ?) AND status IN (` + placeholders(len(statuses)) + `)
		ORDER BY created_at ASC`
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests by status: %w", err)
	}
	return collectRequests(rows)
}

// HasOpenReturn indica si ya hay una devolución Return Pending para el artículo.
func (r *RequestRepo) HasOpenReturn(ctx context.Context, issuedItemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE related_issued_item_id = ? AND status = ?)`,
		issuedItemID, string(entity.StatusReturnPending),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open return: %w", err)
	}
	return exists, nil
}
