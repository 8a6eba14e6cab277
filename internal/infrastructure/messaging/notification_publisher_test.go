package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish_WritesJSONKeyedByRecipient(t *testing.T) {
	w := &fakeWriter{}
	p := NewNotificationPublisher(w, zerolog.Nop())

	n := &entity.Notification{
		ID: "n1", Type: entity.NotificationRejection, Message: "Motivo: Out of budget",
		Recipient: "u1", RelatedRequestID: "r1", CreatedAt: time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, p.Publish(context.Background(), n))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "user:u1", string(w.msgs[0].Key))
	assert.Equal(t, "Rejection", string(w.msgs[0].Headers[0].Value))

	var ev NotificationEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "n1", ev.ID)
	assert.Equal(t, "r1", ev.RelatedRequestID)
	assert.Contains(t, ev.Message, "Out of budget")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublish_RoleKeyAndError(t *testing.T) {
	w := &fakeWriter{}
	p := NewNotificationPublisher(w, zerolog.Nop())
	require.NoError(t, p.Publish(context.Background(), &entity.Notification{
		ID: "n2", Type: entity.NotificationRequest, RecipientRole: entity.RoleInventoryHolder, Department: "IT",
	}))
	assert.Equal(t, "role:Inventory_Holder:IT", string(w.msgs[0].Key))

	w.err = errors.New("broker caído")
	err := p.Publish(context.Background(), &entity.Notification{ID: "n3", Recipient: "u1"})
	assert.ErrorContains(t, err, "broker caído")
}
