package dto

import (
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// CreateRequestRequest body para POST /api/requests.
type CreateRequestRequest struct {
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// MMGApproveRequest body para POST /api/requests/:id/mmg-approve. Sin ledger se genera uno.
type MMGApproveRequest struct {
	LedgerNumber string `json:"ledger_number,omitempty"`
}

// RejectRequestRequest body para POST /api/requests/:id/reject.
type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

// RequestDTO solicitud expuesta por la API.
type RequestDTO struct {
	ID                     string     `json:"id"`
	ItemName               string     `json:"item_name"`
	Category               string     `json:"category"`
	Quantity               int        `json:"quantity"`
	RequestedBy            string     `json:"requested_by"`
	Department             string     `json:"department"`
	Status                 string     `json:"status"`
	DepartmentApprovedBy   string     `json:"department_approved_by,omitempty"`
	ApprovedBy             string     `json:"approved_by,omitempty"`
	RejectedBy             string     `json:"rejected_by,omitempty"`
	RejectionReason        string     `json:"rejection_reason,omitempty"`
	LedgerNumber           string     `json:"ledger_number,omitempty"`
	RelatedIssuedItemID    string     `json:"related_issued_item_id,omitempty"`
	IssuedItemID           string     `json:"issued_item_id,omitempty"`
	IsReturn               bool       `json:"is_return"`
	DepartmentApprovalDate *time.Time `json:"department_approval_date,omitempty"`
	MMGApprovalDate        *time.Time `json:"mmg_approval_date,omitempty"`
	RejectedDate           *time.Time `json:"rejected_date,omitempty"`
	ReturnDate             *time.Time `json:"return_date,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// IssuedItemDTO artículo entregado.
type IssuedItemDTO struct {
	ID                   string     `json:"id"`
	ItemName             string     `json:"item_name"`
	Category             string     `json:"category"`
	Quantity             int        `json:"quantity"`
	LedgerNumber         string     `json:"ledger_number"`
	IssuedTo             string     `json:"issued_to"`
	ApprovedBy           string     `json:"approved_by"`
	DepartmentApprovedBy string     `json:"department_approved_by,omitempty"`
	ApprovedDate         time.Time  `json:"approved_date"`
	Returned             bool       `json:"returned"`
	ReturnDate           *time.Time `json:"return_date,omitempty"`
	Department           string     `json:"department"`
	RelatedRequestID     string     `json:"related_request_id,omitempty"`
}

// IssuanceResponse resultado de una aprobación MMG o de una devolución aprobada.
type IssuanceResponse struct {
	Request        RequestDTO    `json:"request"`
	IssuedItem     IssuedItemDTO `json:"issued_item"`
	RemainingStock int           `json:"remaining_stock"`
}

// ToRequestDTO convierte la entidad.
func ToRequestDTO(r *entity.Request) RequestDTO {
	return RequestDTO{
		ID:                     r.ID,
		ItemName:               r.ItemName,
		Category:               r.Category,
		Quantity:               r.Quantity,
		RequestedBy:            r.RequestedBy,
		Department:             r.Department,
		Status:                 string(r.Status),
		DepartmentApprovedBy:   r.DepartmentApprovedBy,
		ApprovedBy:             r.ApprovedBy,
		RejectedBy:             r.RejectedBy,
		RejectionReason:        r.RejectionReason,
		LedgerNumber:           r.LedgerNumber,
		RelatedIssuedItemID:    r.RelatedIssuedItemID,
		IssuedItemID:           r.IssuedItemID,
		IsReturn:               r.IsReturn(),
		DepartmentApprovalDate: r.DepartmentApprovalDate,
		MMGApprovalDate:        r.MMGApprovalDate,
		RejectedDate:           r.RejectedDate,
		ReturnDate:             r.ReturnDate,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

// ToRequestDTOs convierte una lista; nunca devuelve nil para que el JSON sea [].
func ToRequestDTOs(list []*entity.Request) []RequestDTO {
	out := make([]RequestDTO, 0, len(list))
	for _, r := range list {
		out = append(out, ToRequestDTO(r))
	}
	return out
}

// ToIssuedItemDTO convierte la entidad.
func ToIssuedItemDTO(it *entity.IssuedItem) IssuedItemDTO {
	return IssuedItemDTO{
		ID:                   it.ID,
		ItemName:             it.ItemName,
		Category:             it.Category,
		Quantity:             it.Quantity,
		LedgerNumber:         it.LedgerNumber,
		IssuedTo:             it.IssuedTo,
		ApprovedBy:           it.ApprovedBy,
		DepartmentApprovedBy: it.DepartmentApprovedBy,
		ApprovedDate:         it.ApprovedDate,
		Returned:             it.Returned,
		ReturnDate:           it.ReturnDate,
		Department:           it.Department,
		RelatedRequestID:     it.RelatedRequestID,
	}
}

// ToIssuedItemDTOs convierte una lista.
func ToIssuedItemDTOs(list []*entity.IssuedItem) []IssuedItemDTO {
	out := make([]IssuedItemDTO, 0, len(list))
	for _, it := range list {
		out = append(out, ToIssuedItemDTO(it))
	}
	return out
}
