package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-mmg/internal/application/dto"
	"github.com/jhoicas/inventario-mmg/internal/application/receipt"
	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
)

// IssuedItemHandler artículos entregados, devoluciones y comprobantes (protegido).
type IssuedItemHandler struct {
	uc       *workflow.UseCase
	receipts *receipt.UseCase
}

// NewIssuedItemHandler construye el handler. receipts puede ser nil (sin comprobantes PDF).
func NewIssuedItemHandler(uc *workflow.UseCase, receipts *receipt.UseCase) *IssuedItemHandler {
	return &IssuedItemHandler{uc: uc, receipts: receipts}
}

// Mine godoc
// @Summary      Artículos en mi poder
// @Tags         issued-items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IssuedItemDTO
// @Router       /api/issued-items/mine [get]
func (h *IssuedItemHandler) Mine(c *fiber.Ctx) error {
	list, err := h.uc.ListMyIssuedItems(c.Context(), GetActor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToIssuedItemDTOs(list))
}

// ByUser godoc
// @Summary      Historial de entregas de un usuario
// @Tags         issued-items
// @Security     Bearer
// @Produce      json
// @Param        userId  path      string  true  "ID del usuario"
// @Success      200     {array}   dto.IssuedItemDTO
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/issued-items/user/{userId} [get]
func (h *IssuedItemHandler) ByUser(c *fiber.Ctx) error {
	list, err := h.uc.ListUserIssuedItems(c.Context(), GetActor(c), c.Params("userId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToIssuedItemDTOs(list))
}

// Return godoc
// @Summary      Solicitar devolución
// @Tags         issued-items
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo entregado"
// @Success      201  {object}  dto.RequestDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issued-items/{id}/return [post]
func (h *IssuedItemHandler) Return(c *fiber.Ctx) error {
	req, err := h.uc.CreateReturnRequest(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRequestDTO(req))
}

// Receipt godoc
// @Summary      Comprobante de entrega (PDF)
// @Tags         issued-items
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "ID del artículo entregado"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issued-items/{id}/receipt [get]
func (h *IssuedItemHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "comprobantes deshabilitados"})
	}
	pdfBytes, filename, err := h.receipts.Download(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
