// Package stock operaciones del libro de stock (ingreso, crédito, débito, consultas y bajas).
package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/ledger"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

// Recorder métricas de stock.
type Recorder interface {
	StockOperation(op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) StockOperation(string, string) {}

// UseCase libro de stock. Las operaciones de escritura son sentencias atómicas del repositorio.
type UseCase struct {
	repo    repository.StockRepository
	catalog *catalog.Catalog
	ledger  *ledger.Generator
	log     zerolog.Logger
	rec     Recorder
}

// NewUseCase rec puede ser nil.
func NewUseCase(repo repository.StockRepository, cat *catalog.Catalog, gen *ledger.Generator, log zerolog.Logger, rec Recorder) *UseCase {
	if gen == nil {
		gen = ledger.NewGenerator()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &UseCase{repo: repo, catalog: cat, ledger: gen, log: log.With().Str("component", "stock").Logger(), rec: rec}
}

// IntakeInput ingreso de stock; LedgerNumber vacío genera uno.
type IntakeInput struct {
	ItemName     string
	Category     string
	Department   string
	Quantity     int
	LedgerNumber string
}

// DebitResult entrada tras el débito.
type DebitResult struct {
	Entry     *entity.StockEntry
	Remaining int
}

// Intake valida catálogo, departamento, cantidad y ledger; luego hace upsert.
// created indica si la entrada es nueva (si no, se conservó su ledger).
func (uc *UseCase) Intake(ctx context.Context, in IntakeInput) (*entity.StockEntry, bool, error) {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.Category = strings.TrimSpace(in.Category)
	in.Department = strings.TrimSpace(in.Department)
	switch {
	case in.ItemName == "":
		return nil, false, domain.NewValidationError("item_name", "requerido")
	case in.Category == "":
		return nil, false, domain.NewValidationError("category", "requerido")
	case in.Quantity <= 0:
		return nil, false, domain.NewValidationError("quantity", "debe ser mayor que 0")
	case !catalog.ValidDepartment(in.Department):
		return nil, false, domain.NewValidationError("department", fmt.Sprintf("departamento desconocido %q", in.Department))
	}
	if err := uc.catalog.Check(in.Category, in.ItemName); err != nil {
		return nil, false, err
	}
	ledgerNumber, err := ledger.Normalize(in.LedgerNumber)
	if err != nil {
		return nil, false, err
	}
	if ledgerNumber == "" {
		ledgerNumber = uc.ledger.Next()
	}

	entry, created, err := uc.repo.Credit(ctx, &entity.StockEntry{
		LedgerNumber: ledgerNumber,
		ItemName:     in.ItemName,
		Category:     in.Category,
		Quantity:     in.Quantity,
		Department:   in.Department,
	})
	uc.observe("intake", err)
	if err != nil {
		return nil, false, err
	}
	uc.log.Info().
		Str("ledger", entry.LedgerNumber).
		Str("item", entry.ItemName).
		Str("department", entry.Department).
		Int("quantity", entry.Quantity).
		Bool("created", created).
		Msg("ingreso de stock")
	return entry, created, nil
}

// Credit suma qty; la categoría sale del catálogo.
func (uc *UseCase) Credit(ctx context.Context, itemName, department string, qty int) (*entity.StockEntry, error) {
	if qty <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que 0")
	}
	category, ok := uc.catalog.CategoryOf(itemName)
	if !ok {
		return nil, fmt.Errorf("%w: %q no está en el catálogo", domain.ErrInvalidItem, itemName)
	}
	entry, _, err := uc.repo.Credit(ctx, &entity.StockEntry{
		LedgerNumber: uc.ledger.Next(),
		ItemName:     itemName,
		Category:     category,
		Quantity:     qty,
		Department:   department,
	})
	uc.observe("credit", err)
	return entry, err
}

// Debit resta qty o devuelve *domain.InsufficientStockError con lo disponible.
func (uc *UseCase) Debit(ctx context.Context, itemName, department string, qty int) (*DebitResult, error) {
	if qty <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que 0")
	}
	entry, err := uc.repo.Debit(ctx, itemName, department, qty)
	uc.observe("debit", err)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("ledger", entry.LedgerNumber).Int("debited", qty).Int("remaining", entry.Quantity).Msg("débito de stock")
	return &DebitResult{Entry: entry, Remaining: entry.Quantity}, nil
}

// Lookup por número de ledger.
func (uc *UseCase) Lookup(ctx context.Context, ledgerNumber string) (*entity.StockEntry, error) {
	e, err := uc.repo.GetByLedger(ctx, ledgerNumber)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Find por artículo y departamento.
func (uc *UseCase) Find(ctx context.Context, itemName, department string) (*entity.StockEntry, error) {
	e, err := uc.repo.Find(ctx, itemName, department)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// List paginado.
func (uc *UseCase) List(ctx context.Context, department string, limit, offset int) ([]*entity.StockEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, department, limit, offset)
}

// Remove baja administrativa de una entrada.
func (uc *UseCase) Remove(ctx context.Context, ledgerNumber string) error {
	ok, err := uc.repo.Delete(ctx, ledgerNumber)
	uc.observe("remove", err)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.log.Warn().Str("ledger", ledgerNumber).Msg("entrada de stock eliminada")
	return nil
}

func (uc *UseCase) observe(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInsufficientStock):
		outcome = "insufficient_stock"
	default:
		outcome = "error"
	}
	uc.rec.StockOperation(op, outcome)
}
