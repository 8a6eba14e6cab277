package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-mmg/internal/application/dto"
	"github.com/jhoicas/inventario-mmg/internal/domain"
)

// errorResponse traduce los errores de dominio a código HTTP y cuerpo.
// ErrStaleState se evalúa antes que ErrInvalidStatusTransition porque lo envuelve.
func errorResponse(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   insufficient.Error(),
			Requested: insufficient.Requested,
			Available: insufficient.Available,
		})
	}
	status, code, message := fiber.StatusInternalServerError, "INTERNAL", err.Error()
	switch {
	case errors.Is(err, domain.ErrStaleState):
		status, code, message = fiber.StatusConflict, "STALE_STATE", "la solicitud cambió de estado; recargue e intente de nuevo"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		status, code, message = fiber.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error()
	case errors.Is(err, domain.ErrInvalidItem):
		status, code, message = fiber.StatusBadRequest, "INVALID_ITEM", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, message = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido"
	case errors.Is(err, domain.ErrDuplicate):
		status, code, message = fiber.StatusConflict, "DUPLICATE", err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
