package entity

import "time"

// RequestStatus estado de una solicitud dentro del flujo de aprobación.
// Los valores son los que se persisten y se exponen en la API.
type RequestStatus string

const (
	StatusPending            RequestStatus = "Pending"
	StatusDepartmentApproved RequestStatus = "Department Approved"
	StatusMMGApproved        RequestStatus = "MMG Approved"
	StatusRejected           RequestStatus = "Rejected"
	StatusReturnPending      RequestStatus = "Return Pending"
	StatusReturnApproved     RequestStatus = "Return Approved"
)

// Valid indica si el estado pertenece al dominio conocido.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDepartmentApproved, StatusMMGApproved,
		StatusRejected, StatusReturnPending, StatusReturnApproved:
		return true
	}
	return false
}

func (s RequestStatus) String() string { return string(s) }

// Request representa una solicitud de artículos (emisión) o de devolución.
// Las solicitudes de devolución tienen RelatedIssuedItemID; las de emisión quedan
// enlazadas a su IssuedItem mediante IssuedItemID tras la aprobación MMG.
type Request struct {
	ID                     string
	ItemName               string
	Category               string
	Quantity               int
	RequestedBy            string // UserID
	Department             string
	Status                 RequestStatus
	DepartmentApprovedBy   string
	ApprovedBy             string
	RejectedBy             string
	RejectionReason        string
	LedgerNumber           string
	RelatedIssuedItemID    string
	IssuedItemID           string
	DepartmentApprovalDate *time.Time
	MMGApprovalDate        *time.Time
	RejectedDate           *time.Time
	ReturnDate             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsReturn indica si la solicitud pertenece al subflujo de devolución.
func (r *Request) IsReturn() bool {
	return r.RelatedIssuedItemID != ""
}

// RequestPatch campos que una transición escribe junto con el nuevo estado.
// Los campos vacíos/nil no se modifican.
type RequestPatch struct {
	Status                 RequestStatus
	DepartmentApprovedBy   string
	ApprovedBy             string
	RejectedBy             string
	RejectionReason        string
	LedgerNumber           string
	IssuedItemID           string
	DepartmentApprovalDate *time.Time
	MMGApprovalDate        *time.Time
	RejectedDate           *time.Time
	ReturnDate             *time.Time
	UpdatedAt              time.Time
}
