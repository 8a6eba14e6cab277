package entity

import "time"

// StockEntry cantidad disponible de un artículo en un departamento.
// (ItemName, Department) es único; LedgerNumber es único e identifica la entrada ante los usuarios.
type StockEntry struct {
	LedgerNumber string
	ItemName     string
	Category     string
	Quantity     int
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
