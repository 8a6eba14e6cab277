// Package messaging publica las notificaciones del flujo en un tópico Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventario-mmg/internal/application/notification"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

var _ notification.Publisher = (*NotificationPublisher)(nil)

// MessageWriter lo que usamos de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter writer con balanceo LeastBytes y lotes cortos.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		BatchSize:              100,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NotificationEvent payload JSON publicado.
type NotificationEvent struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	Message             string    `json:"message"`
	Recipient           string    `json:"recipient,omitempty"`
	RecipientRole       string    `json:"recipient_role,omitempty"`
	Department          string    `json:"department,omitempty"`
	RelatedRequestID    string    `json:"related_request_id,omitempty"`
	RelatedIssuedItemID string    `json:"related_issued_item_id,omitempty"`
	CreatedBy           string    `json:"created_by,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// NotificationPublisher implementa notification.Publisher.
type NotificationPublisher struct {
	writer MessageWriter
	log    zerolog.Logger
}

// NewNotificationPublisher construye el publicador.
func NewNotificationPublisher(w MessageWriter, log zerolog.Logger) *NotificationPublisher {
	return &NotificationPublisher{writer: w, log: log.With().Str("component", "kafka").Logger()}
}

// Publish escribe un mensaje por notificación; la clave agrupa por destinatario para conservar el orden.
func (p *NotificationPublisher) Publish(ctx context.Context, n *entity.Notification) error {
	payload, err := json.Marshal(NotificationEvent{
		ID:                  n.ID,
		Type:                string(n.Type),
		Message:             n.Message,
		Recipient:           n.Recipient,
		RecipientRole:       string(n.RecipientRole),
		Department:          n.Department,
		RelatedRequestID:    n.RelatedRequestID,
		RelatedIssuedItemID: n.RelatedIssuedItemID,
		CreatedBy:           n.CreatedBy,
		CreatedAt:           n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("serializar notificación: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(routingKey(n)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	p.log.Debug().Str("id", n.ID).Str("type", string(n.Type)).Msg("notificación publicada")
	return nil
}

// Close libera el writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}

func routingKey(n *entity.Notification) string {
	if n.Recipient != "" {
		return "user:" + n.Recipient
	}
	return "role:" + string(n.RecipientRole) + ":" + n.Department
}
