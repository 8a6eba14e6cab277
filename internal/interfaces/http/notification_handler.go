package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-mmg/internal/application/dto"
	"github.com/jhoicas/inventario-mmg/internal/application/notification"
)

// NotificationHandler bandeja de notificaciones (protegido).
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notificaciones del usuario y de su rol
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo 50"
// @Success      200    {array}  dto.NotificationDTO
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetActor(c), c.QueryInt("limit", notification.DefaultListLimit))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToNotificationDTOs(list))
}

// UnreadCount godoc
// @Summary      Cantidad de notificaciones sin leer
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.uc.UnreadCount(c.Context(), GetActor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.UnreadCountResponse{Unread: n})
}

// MarkRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarkReadResponse
// @Router       /api/notifications/mark-read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context(), GetActor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MarkReadResponse{Updated: n})
}

// Archive godoc
// @Summary      Archivar notificación
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la notificación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/archive [post]
func (h *NotificationHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación archivada"})
}

// Send godoc
// @Summary      Enviar aviso a un usuario
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SendNotificationRequest  true  "user_id, message"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var in dto.SendNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Send(c.Context(), GetActor(c), notification.SendInput{UserID: in.UserID, Message: in.Message}); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "aviso enviado"})
}
