package dto

import (
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// StockIntakeRequest body para POST /api/stock.
type StockIntakeRequest struct {
	ItemName     string `json:"item_name"`
	Category     string `json:"category"`
	Department   string `json:"department"`
	Quantity     int    `json:"quantity"`
	LedgerNumber string `json:"ledger_number,omitempty"`
}

// StockDebitRequest body para POST /api/stock/debit.
type StockDebitRequest struct {
	ItemName   string `json:"item_name"`
	Department string `json:"department"`
	Quantity   int    `json:"quantity"`
}

// StockEntryDTO entrada del libro de stock.
type StockEntryDTO struct {
	LedgerNumber string    `json:"ledger_number"`
	ItemName     string    `json:"item_name"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockIntakeResponse Action es "created" o "updated".
type StockIntakeResponse struct {
	Action string        `json:"action"`
	Entry  StockEntryDTO `json:"entry"`
}

// StockListResponse listado paginado.
type StockListResponse struct {
	Items []StockEntryDTO `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToStockEntryDTO convierte la entidad.
func ToStockEntryDTO(e *entity.StockEntry) StockEntryDTO {
	return StockEntryDTO{
		LedgerNumber: e.LedgerNumber,
		ItemName:     e.ItemName,
		Category:     e.Category,
		Quantity:     e.Quantity,
		Department:   e.Department,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
