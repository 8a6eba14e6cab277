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

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, item_name, category, quantity, requested_by, department, status,
	department_approved_by, approved_by, rejected_by, rejection_reason, ledger_number,
	related_issued_item_id, issued_item_id, department_approval_date, mmg_approval_date,
	rejected_date, return_date, created_at, updated_at`

// RequestRepo implementación de RequestRepository sobre PostgreSQL.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var r entity.Request
	err := row.Scan(
		&r.ID, &r.ItemName, &r.Category, &r.Quantity, &r.RequestedBy, &r.Department, &r.Status,
		&r.DepartmentApprovedBy, &r.ApprovedBy, &r.RejectedBy, &r.RejectionReason, &r.LedgerNumber,
		&r.RelatedIssuedItemID, &r.IssuedItemID, &r.DepartmentApprovalDate, &r.MMGApprovalDate,
		&r.RejectedDate, &r.ReturnDate, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRequests(rows pgx.Rows) ([]*entity.Request, error) {
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
	query := `
		INSERT INTO requests (id, item_name, category, quantity, requested_by, department, status,
			related_issued_item_id, ledger_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.ItemName, req.Category, req.Quantity, req.RequestedBy, req.Department, req.Status,
		req.RelatedIssuedItemID, req.LedgerNumber, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una devolución abierta para el artículo", domain.ErrInvalidStatusTransition)
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// Transition UPDATE ... WHERE id AND status = expected; los campos vacíos del patch conservan su valor.
func (r *RequestRepo) Transition(ctx context.Context, id string, expected entity.RequestStatus, p entity.RequestPatch) (*entity.Request, error) {
	query := `
		UPDATE requests SET
			status = $3,
			department_approved_by = COALESCE(NULLIF($4, ''), department_approved_by),
			approved_by = COALESCE(NULLIF($5, ''), approved_by),
			rejected_by = COALESCE(NULLIF($6, ''), rejected_by),
			rejection_reason = COALESCE(NULLIF($7, ''), rejection_reason),
			ledger_number = COALESCE(NULLIF($8, ''), ledger_number),
			issued_item_id = COALESCE(NULLIF($9, ''), issued_item_id),
			department_approval_date = COALESCE($10, department_approval_date),
			mmg_approval_date = COALESCE($11, mmg_approval_date),
			rejected_date = COALESCE($12, rejected_date),
			return_date = COALESCE($13, return_date),
			updated_at = $14
		WHERE id = $1 AND status = $2
		RETURNING ` + requestColumns
	req, err := scanRequest(r.q.QueryRow(ctx, query, id, expected, p.Status,
		p.DepartmentApprovedBy, p.ApprovedBy, p.RejectedBy, p.RejectionReason, p.LedgerNumber, p.IssuedItemID,
		p.DepartmentApprovalDate, p.MMGApprovalDate, p.RejectedDate, p.ReturnDate, p.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("transition request: %w", err)
	}
	return req, nil
}

// DeletePending borrado condicional (dueño + Pending).
func (r *RequestRepo) DeletePending(ctx context.Context, id, requestedBy string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM requests WHERE id = $1 AND requested_by = $2 AND status = $3`,
		id, requestedBy, entity.StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("delete request: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListByRequester solicitudes de un usuario, recientes primero.
func (r *RequestRepo) ListByRequester(ctx context.Context, userID string) ([]*entity.Request, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE requested_by = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return collectRequests(rows)
}

// ListByStatus solicitudes en alguno de los estados; department vacío = todos.
func (r *RequestRepo) ListByStatus(ctx context.Context, department string, statuses ...entity.RequestStatus) ([]*entity.Request, error) {
	st := make([]string, len(statuses))
	for i, s := range statuses {
		st[i] = string(s)
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE ($1 = '' OR department = $1) AND status = ANY($2)
		ORDER BY created_at ASC`, department, st)
	if err != nil {
		return nil, fmt.Errorf("list requests by status: %w", err)
	}
	return collectRequests(rows)
}

// HasOpenReturn indica si ya hay una devolución Return Pending para el artículo.
func (r *RequestRepo) HasOpenReturn(ctx context.Context, issuedItemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE related_issued_item_id = $1 AND status = $2)`,
		issuedItemID, entity.StatusReturnPending,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open return: %w", err)
	}
	return exists, nil
}
