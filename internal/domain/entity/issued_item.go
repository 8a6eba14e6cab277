package entity

import "time"

// IssuedItem artículo entregado a un usuario tras la aprobación MMG.
// Returned empieza en false y, una vez en true, no vuelve atrás: reemitir exige una nueva solicitud.
type IssuedItem struct {
	ID                   string
	ItemName             string
	Category             string
	Quantity             int
	LedgerNumber         string
	IssuedTo             string // UserID
	ApprovedBy           string
	DepartmentApprovedBy string
	ApprovedDate         time.Time
	Returned             bool
	ReturnDate           *time.Time
	Department           string
	RelatedRequestID     string
	CreatedAt            time.Time
}
