package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_CreditUpsertsAndKeepsLedger(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository(NewTestDB(t))

	s, created, err := repo.Credit(ctx, &entity.StockEntry{LedgerNumber: "100", ItemName: "Keyboard", Category: "Electronics", Quantity: 4, Department: "MMG"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, s.Quantity)

	s, created, err = repo.Credit(ctx, &entity.StockEntry{LedgerNumber: "999", ItemName: "Keyboard", Category: "Electronics", Quantity: 6, Department: "MMG"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 10, s.Quantity)
	assert.Equal(t, "100", s.LedgerNumber, "una entrada existente conserva su ledger")

	_, _, err = repo.Credit(ctx, &entity.StockEntry{LedgerNumber: "100", ItemName: "Mouse", Category: "Electronics", Quantity: 1, Department: "MMG"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestStock_DebitNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository(NewTestDB(t))
	_, _, err := repo.Credit(ctx, &entity.StockEntry{LedgerNumber: "1", ItemName: "Printer", Category: "Electronics", Quantity: 2, Department: "MMG"})
	require.NoError(t, err)

	_, err = repo.Debit(ctx, "Printer", "MMG", 5)
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Available)

	cur, err := repo.Find(ctx, "Printer", "MMG")
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Quantity)

	s, err := repo.Debit(ctx, "Printer", "MMG", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)

	_, err = repo.Debit(ctx, "Projector", "MMG", 1)
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, insufficient.Available)
}

func TestStock_ListLookupDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository(NewTestDB(t))
	for i, it := range []string{"Chair", "Desk"} {
		_, _, err := repo.Credit(ctx, &entity.StockEntry{LedgerNumber: string(rune('1' + i)), ItemName: it, Category: "Furniture", Quantity: 1, Department: "MMG"})
		require.NoError(t, err)
	}
	_, _, err := repo.Credit(ctx, &entity.StockEntry{LedgerNumber: "9", ItemName: "Chair", Category: "Furniture", Quantity: 1, Department: "IT"})
	require.NoError(t, err)

	all, err := repo.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	mmg, err := repo.List(ctx, "MMG", 10, 0)
	require.NoError(t, err)
	assert.Len(t, mmg, 2)

	got, err := repo.GetByLedger(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, "IT", got.Department)

	ok, err := repo.Delete(ctx, "9")
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = repo.GetByLedger(ctx, "9")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Requests
// ──────────────────────────────────────────────────────────────────────────────

func newRequest(id string, status entity.RequestStatus) *entity.Request {
	now := time.Now()
	return &entity.Request{
		ID: id, ItemName: "Keyboard", Category: "Electronics", Quantity: 3,
		RequestedBy: "u1", Department: "IT", Status: status, CreatedAt: now, UpdatedAt: now,
	}
}

func TestRequest_TransitionIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestRepository(NewTestDB(t))
	require.NoError(t, repo.Create(ctx, newRequest("r1", entity.StatusPending)))

	now := time.Now()
	got, err := repo.Transition(ctx, "r1", entity.StatusPending, entity.RequestPatch{
		Status: entity.StatusDepartmentApproved, DepartmentApprovedBy: "h1", DepartmentApprovalDate: &now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.StatusDepartmentApproved, got.Status)
	assert.Equal(t, "h1", got.DepartmentApprovedBy)
	require.NotNil(t, got.DepartmentApprovalDate)
	assert.WithinDuration(t, now, *got.DepartmentApprovalDate, time.Microsecond)

	// Segundo intento con el mismo estado esperado: no aplica.
	got, err = repo.Transition(ctx, "r1", entity.StatusPending, entity.RequestPatch{Status: entity.StatusDepartmentApproved, UpdatedAt: now})
	require.NoError(t, err)
	assert.Nil(t, got)

	stored, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "h1", stored.DepartmentApprovedBy, "los campos vacíos del patch no borran valores")
}

func TestRequest_DeletePendingOnlyForOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestRepository(NewTestDB(t))
	require.NoError(t, repo.Create(ctx, newRequest("r1", entity.StatusPending)))
	require.NoError(t, repo.Create(ctx, newRequest("r2", entity.StatusDepartmentApproved)))

	ok, err := repo.DeletePending(ctx, "r1", "intruso")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.DeletePending(ctx, "r2", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.DeletePending(ctx, "r1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	mine, err := repo.ListByRequester(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRequest_OneOpenReturnPerItem(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestRepository(NewTestDB(t))
	ret := newRequest("r1", entity.StatusReturnPending)
	ret.RelatedIssuedItemID = "item-1"
	require.NoError(t, repo.Create(ctx, ret))

	open, err := repo.HasOpenReturn(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, open)

	dup := newRequest("r2", entity.StatusReturnPending)
	dup.RelatedIssuedItemID = "item-1"
	err = repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, domain.ErrInvalidStatusTransition))

	pending, err := repo.ListByStatus(ctx, "", entity.StatusDepartmentApproved, entity.StatusReturnPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Issued items
// ──────────────────────────────────────────────────────────────────────────────

func TestIssuedItem_MarkReturnedIsOneWay(t *testing.T) {
	ctx := context.Background()
	repo := NewIssuedItemRepository(NewTestDB(t))
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entity.IssuedItem{
		ID: "i1", ItemName: "Keyboard", Category: "Electronics", Quantity: 3, LedgerNumber: "777",
		IssuedTo: "u1", ApprovedBy: "m1", ApprovedDate: now, Department: "IT", CreatedAt: now,
	}))

	ok, err := repo.MarkReturned(ctx, "i1", now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.MarkReturned(ctx, "i1", now)
	require.NoError(t, err)
	assert.False(t, ok)

	it, err := repo.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, it.Returned)
	require.NotNil(t, it.ReturnDate)

	open, err := repo.ListByUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, open)
	all, err := repo.ListByUser(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notifications
// ──────────────────────────────────────────────────────────────────────────────

func TestNotification_InboxVisibility(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(NewTestDB(t))
	now := time.Now()
	add := func(id string, recipient string, role entity.Role, dep string) {
		require.NoError(t, repo.Create(ctx, &entity.Notification{
			ID: id, Type: entity.NotificationRequest, Message: id, Status: entity.NotificationPending,
			Recipient: recipient, RecipientRole: role, Department: dep, RelatedRequestID: "r-" + id, CreatedAt: now,
		}))
	}
	add("n1", "u1", "", "")
	add("n2", "", entity.RoleInventoryHolder, "IT")
	add("n3", "", entity.RoleInventoryHolder, "FINANCE")
	add("n4", "", entity.RoleMMGInventoryHolder, "")

	holderIT := repository.NotificationFilter{UserID: "h1", Role: entity.RoleInventoryHolder, Department: "IT"}
	list, err := repo.List(ctx, holderIT, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "n2", list[0].ID)

	user := repository.NotificationFilter{UserID: "u1", Role: entity.RoleUser, Department: "IT"}
	n, err := repo.Count(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	mmg := repository.NotificationFilter{UserID: "m1", Role: entity.RoleMMGInventoryHolder, Department: "MMG", AllDepartments: true}
	n, err = repo.Count(ctx, mmg)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	marked, err := repo.MarkRead(ctx, user, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)
	unread := user
	unread.Statuses = []entity.NotificationStatus{entity.NotificationPending}
	n, err = repo.Count(ctx, unread)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ok, err := repo.Archive(ctx, "n3", holderIT)
	require.NoError(t, err)
	assert.False(t, ok, "no visible para el holder de IT")
	ok, err = repo.Archive(ctx, "n2", holderIT)
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := repo.DeletePendingByRequest(ctx, "r-n4")
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	deleted, err = repo.DeletePendingByRequest(ctx, "r-n1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted, "las ya leídas se conservan")
}
