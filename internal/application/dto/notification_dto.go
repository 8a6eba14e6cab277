package dto

import (
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
)

// NotificationDTO notificación de la bandeja.
type NotificationDTO struct {
	ID                  string     `json:"id"`
	Type                string     `json:"type"`
	Message             string     `json:"message"`
	Status              string     `json:"status"`
	Recipient           string     `json:"recipient,omitempty"`
	RecipientRole       string     `json:"recipient_role,omitempty"`
	Department          string     `json:"department,omitempty"`
	RelatedRequestID    string     `json:"related_request_id,omitempty"`
	RelatedIssuedItemID string     `json:"related_issued_item_id,omitempty"`
	CreatedBy           string     `json:"created_by,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	ReadAt              *time.Time `json:"read_at,omitempty"`
}

// UnreadCountResponse GET /api/notifications/unread-count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// MarkReadResponse POST /api/notifications/mark-read.
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// SendNotificationRequest body para POST /api/notifications.
type SendNotificationRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ToNotificationDTOs convierte una lista.
func ToNotificationDTOs(list []*entity.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationDTO{
			ID:                  n.ID,
			Type:                string(n.Type),
			Message:             n.Message,
			Status:              string(n.Status),
			Recipient:           n.Recipient,
			RecipientRole:       string(n.RecipientRole),
			Department:          n.Department,
			RelatedRequestID:    n.RelatedRequestID,
			RelatedIssuedItemID: n.RelatedIssuedItemID,
			CreatedBy:           n.CreatedBy,
			CreatedAt:           n.CreatedAt,
			ReadAt:              n.ReadAt,
		})
	}
	return out
}
