package entity

import "time"

// NotificationType etiqueta de la notificación.
type NotificationType string

const (
	NotificationRequest        NotificationType = "Request"
	NotificationApproval       NotificationType = "Approval"
	NotificationRejection      NotificationType = "Rejection"
	NotificationReturnRequest  NotificationType = "Return Request"
	NotificationReturnApproval NotificationType = "Return Approval"
	NotificationAlert          NotificationType = "Alert"
)

// NotificationStatus avanza Pending -> Completed | Archived.
type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "Pending"
	NotificationCompleted NotificationStatus = "Completed"
	NotificationArchived  NotificationStatus = "Archived"
)

// NotificationEvent lo que emite el flujo en cada transición. Se dirige a un usuario
// (Recipient) o a un rol (RecipientRole), opcionalmente acotado a un departamento.
type NotificationEvent struct {
	Type                NotificationType
	Message             string
	Recipient           string
	RecipientRole       Role
	Department          string
	RelatedRequestID    string
	RelatedIssuedItemID string
	CreatedBy           string
}

// Notification registro persistido de una notificación.
type Notification struct {
	ID                  string
	Type                NotificationType
	Message             string
	Status              NotificationStatus
	Recipient           string
	RecipientRole       Role
	Department          string
	RelatedRequestID    string
	RelatedIssuedItemID string
	CreatedBy           string
	CreatedAt           time.Time
	ReadAt              *time.Time
}
