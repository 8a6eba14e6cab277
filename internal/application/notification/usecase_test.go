package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/application/notification"
	"github.com/jhoicas/inventario-mmg/internal/domain"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/sqlite"
)

var (
	alice   = entity.Actor{ID: "alice", Role: entity.RoleUser, Department: "IT"}
	itHold  = entity.Actor{ID: "h-it", Role: entity.RoleInventoryHolder, Department: "IT"}
	finHold = entity.Actor{ID: "h-fin", Role: entity.RoleInventoryHolder, Department: "FINANCE"}
	central = entity.Actor{ID: "mmg", Role: entity.RoleMMGInventoryHolder, Department: "MMG"}
)

type recordingPublisher struct {
	published []*entity.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, n *entity.Notification) error {
	p.published = append(p.published, n)
	return p.err
}

func setup(t *testing.T, pub notification.Publisher) (*notification.Dispatcher, *notification.UseCase) {
	t.Helper()
	repo := sqlite.NewNotificationRepository(sqlite.NewTestDB(t))
	d := notification.NewDispatcher(repo, pub)
	return d, notification.NewUseCase(repo, d, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatcher
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatcher_StoresAndPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	d, uc := setup(t, pub)
	ctx := context.Background()

	require.NoError(t, d.Notify(ctx, entity.NotificationEvent{
		Type: entity.NotificationApproval, Message: "aprobada", Recipient: alice.ID, RelatedRequestID: "r1",
	}))
	require.Len(t, pub.published, 1)
	assert.Equal(t, entity.NotificationPending, pub.published[0].Status)
	assert.NotEmpty(t, pub.published[0].ID)

	list, err := uc.List(ctx, alice, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pub.published[0].ID, list[0].ID)
}

func TestDispatcher_Errors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker caído")}
	d, uc := setup(t, pub)
	ctx := context.Background()

	err := d.Notify(ctx, entity.NotificationEvent{Type: entity.NotificationAlert, Message: "sin destino"})
	assert.Error(t, err)
	assert.Empty(t, pub.published)

	err = d.Notify(ctx, entity.NotificationEvent{Type: entity.NotificationAlert, Message: "hola", Recipient: alice.ID})
	assert.ErrorContains(t, err, "broker caído")
	n, err := uc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la copia persistida no depende del broker")
}

// ──────────────────────────────────────────────────────────────────────────────
// Bandeja
// ──────────────────────────────────────────────────────────────────────────────

func TestInbox_RoleAndDepartmentScope(t *testing.T) {
	d, uc := setup(t, nil)
	ctx := context.Background()
	require.NoError(t, d.Notify(ctx, entity.NotificationEvent{
		Type: entity.NotificationRequest, Message: "nueva", RecipientRole: entity.RoleInventoryHolder, Department: "IT",
	}))
	require.NoError(t, d.Notify(ctx, entity.NotificationEvent{
		Type: entity.NotificationReturnRequest, Message: "devolución", RecipientRole: entity.RoleMMGInventoryHolder,
	}))

	count := func(a entity.Actor) int {
		n, err := uc.UnreadCount(ctx, a)
		require.NoError(t, err)
		return n
	}
	assert.Equal(t, 1, count(itHold))
	assert.Equal(t, 0, count(finHold))
	assert.Equal(t, 1, count(central))
	assert.Equal(t, 0, count(alice))
}

func TestMarkAllReadAndArchive(t *testing.T) {
	d, uc := setup(t, nil)
	ctx := context.Background()
	for _, msg := range []string{"uno", "dos"} {
		require.NoError(t, d.Notify(ctx, entity.NotificationEvent{Type: entity.NotificationAlert, Message: msg, Recipient: alice.ID}))
	}

	n, err := uc.MarkAllRead(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	unread, err := uc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, unread)

	list, err := uc.List(ctx, alice, 10)
	require.NoError(t, err)
	require.Len(t, list, 2, "las leídas siguen en la bandeja")
	assert.Equal(t, entity.NotificationCompleted, list[0].Status)
	assert.NotNil(t, list[0].ReadAt)

	assert.True(t, errors.Is(uc.Archive(ctx, itHold, list[0].ID), domain.ErrNotFound), "no es del holder")
	require.NoError(t, uc.Archive(ctx, alice, list[0].ID))
	list, err = uc.List(ctx, alice, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSend(t *testing.T) {
	_, uc := setup(t, nil)
	ctx := context.Background()

	err := uc.Send(ctx, itHold, notification.SendInput{UserID: alice.ID, Message: "hola"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	err = uc.Send(ctx, central, notification.SendInput{UserID: " ", Message: "hola"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	err = uc.Send(ctx, central, notification.SendInput{UserID: alice.ID, Message: ""})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	require.NoError(t, uc.Send(ctx, central, notification.SendInput{UserID: alice.ID, Message: "Pase a retirar su equipo"}))
	list, err := uc.List(ctx, alice, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationAlert, list[0].Type)
	assert.Equal(t, central.ID, list[0].CreatedBy)
}
