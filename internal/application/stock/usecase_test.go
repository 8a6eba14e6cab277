package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/application/stock"
	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/sqlite"
)

type opRecorder map[string]int

func (r opRecorder) StockOperation(op, outcome string) { r[op+":"+outcome]++ }

func newUseCase(t *testing.T) (*stock.UseCase, opRecorder) {
	t.Helper()
	rec := opRecorder{}
	repo := sqlite.NewStockRepository(sqlite.NewTestDB(t))
	return stock.NewUseCase(repo, catalog.Default(), nil, zerolog.Nop(), rec), rec
}

func TestIntake_CreatesThenAccumulates(t *testing.T) {
	uc, rec := newUseCase(t)
	ctx := context.Background()

	first, created, err := uc.Intake(ctx, stock.IntakeInput{
		ItemName: "Laptop", Category: "Electronics", Department: "MMG", Quantity: 4, LedgerNumber: "1001",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "1001", first.LedgerNumber)
	assert.Equal(t, 4, first.Quantity)

	second, created, err := uc.Intake(ctx, stock.IntakeInput{
		ItemName: "Laptop", Category: "Electronics", Department: "MMG", Quantity: 6,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "1001", second.LedgerNumber, "la entrada existente conserva su ledger")
	assert.Equal(t, 10, second.Quantity)
	assert.Equal(t, 2, rec["intake:ok"])
}

func TestIntake_Validation(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   stock.IntakeInput
		want error
	}{
		{"artículo fuera de categoría", stock.IntakeInput{ItemName: "Mop", Category: "Electronics", Department: "MMG", Quantity: 1}, domain.ErrInvalidItem},
		{"cantidad cero", stock.IntakeInput{ItemName: "Mop", Category: "Cleaning", Department: "MMG", Quantity: 0}, domain.ErrInvalidInput},
		{"departamento desconocido", stock.IntakeInput{ItemName: "Mop", Category: "Cleaning", Department: "XYZ", Quantity: 1}, domain.ErrInvalidInput},
		{"ledger no numérico", stock.IntakeInput{ItemName: "Mop", Category: "Cleaning", Department: "MMG", Quantity: 1, LedgerNumber: "A-1"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Intake(ctx, tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	list, err := uc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIntake_DuplicateLedger(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, _, err := uc.Intake(ctx, stock.IntakeInput{ItemName: "Pen", Category: "Stationery", Department: "MMG", Quantity: 1, LedgerNumber: "55"})
	require.NoError(t, err)

	_, _, err = uc.Intake(ctx, stock.IntakeInput{ItemName: "Pencil", Category: "Stationery", Department: "MMG", Quantity: 1, LedgerNumber: "55"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "got %v", err)
}

func TestDebit_NeverGoesNegative(t *testing.T) {
	uc, rec := newUseCase(t)
	ctx := context.Background()
	_, _, err := uc.Intake(ctx, stock.IntakeInput{ItemName: "Printer", Category: "Electronics", Department: "MMG", Quantity: 2})
	require.NoError(t, err)

	_, err = uc.Debit(ctx, "Printer", "MMG", 5)
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient), "got %v", err)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 1, rec["debit:insufficient_stock"])

	res, err := uc.Debit(ctx, "Printer", "MMG", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	_, err = uc.Debit(ctx, "Printer", "MMG", 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Debit(ctx, "Scanner", "MMG", 1)
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, insufficient.Available)
}

func TestCredit_DerivesCategory(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	e, err := uc.Credit(ctx, "Hammer", "MMG", 3)
	require.NoError(t, err)
	assert.Equal(t, "Tools", e.Category)

	_, err = uc.Credit(ctx, "Scanner", "MMG", 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidItem))
}

func TestLookupAndRemove(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, _, err := uc.Intake(ctx, stock.IntakeInput{ItemName: "Chair", Category: "Furniture", Department: "IT", Quantity: 8, LedgerNumber: "42"})
	require.NoError(t, err)

	e, err := uc.Lookup(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Chair", e.ItemName)
	_, err = uc.Find(ctx, "Chair", "IT")
	require.NoError(t, err)
	_, err = uc.Find(ctx, "Chair", "MMG")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := uc.List(ctx, "IT", 500, -1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Remove(ctx, "42"))
	_, err = uc.Lookup(ctx, "42")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(uc.Remove(ctx, "42"), domain.ErrNotFound))
}
