package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-mmg/internal/application/dto"
	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
)

// RequestHandler endpoints del flujo de solicitudes (protegido).
type RequestHandler struct {
	uc *workflow.UseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *workflow.UseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de artículos
// @Description  El departamento se toma del token. El artículo debe pertenecer a la categoría.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateRequestRequest  true  "item_name, category, quantity"
// @Success      201   {object}  dto.RequestDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	req, err := h.uc.CreateRequest(c.Context(), GetActor(c), workflow.CreateRequestInput{
		ItemName: in.ItemName,
		Category: in.Category,
		Quantity: in.Quantity,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRequestDTO(req))
}

// Mine godoc
// @Summary      Mis solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequestDTO
// @Router       /api/requests/mine [get]
func (h *RequestHandler) Mine(c *fiber.Ctx) error {
	list, err := h.uc.ListMyRequests(c.Context(), GetActor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToRequestDTOs(list))
}

// GetByID godoc
// @Summary      Detalle de una solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetRequest(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToRequestDTO(req))
}

// Cancel godoc
// @Summary      Cancelar solicitud pendiente
// @Description  Solo el solicitante y solo en estado Pending.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.CancelRequest(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud cancelada"})
}

// DepartmentQueue godoc
// @Summary      Solicitudes pendientes del departamento
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RequestDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/requests/department [get]
func (h *RequestHandler) DepartmentQueue(c *fiber.Ctx) error {
	list, err := h.uc.ListDepartmentPending(c.Context(), GetActor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToRequestDTOs(list))
}

// DepartmentApprove godoc
// @Summary      Aprobación del departamento
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/department-approve [post]
func (h *RequestHandler) DepartmentApprove(c *fiber.Ctx) error {
	req, err := h.uc.ApproveAtDepartment(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToRequestDTO(req))
}

// MMGQueue godoc
// @Summary      Cola MMG (aprobadas por departamento y devoluciones)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequestDTO
// @Router       /api/requests/mmg-pending [get]
func (h *RequestHandler) MMGQueue(c *fiber.Ctx) error {
	list, err := h.uc.ListMMGPending(c.Context(), GetActor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToRequestDTOs(list))
}

// MMGApprove godoc
// @Summary      Aprobación MMG y emisión
// @Description  Descuenta el stock central, crea el artículo entregado y cierra la solicitud.
// @Description  Sin ledger_number se genera uno.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true   "ID de la solicitud"
// @Param        body  body      dto.MMGApproveRequest  false  "ledger_number opcional"
// @Success      200   {object}  dto.IssuanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/requests/{id}/mmg-approve [post]
func (h *RequestHandler) MMGApprove(c *fiber.Ctx) error {
	var in dto.MMGApproveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.ApproveAtMMG(c.Context(), GetActor(c), c.Params("id"), in.LedgerNumber)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(issuanceResponse(out))
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la solicitud"
// @Param        body  body      dto.RejectRequestRequest  true  "motivo"
// @Success      200   {object}  dto.RequestDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	req, err := h.uc.RejectRequest(c.Context(), GetActor(c), c.Params("id"), in.Reason)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToRequestDTO(req))
}

// ReturnApprove godoc
// @Summary      Aprobar devolución
// @Description  Marca el artículo como devuelto y reingresa la cantidad al stock central.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud de devolución"
// @Success      200  {object}  dto.IssuanceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/return-approve [post]
func (h *RequestHandler) ReturnApprove(c *fiber.Ctx) error {
	out, err := h.uc.ApproveReturn(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(issuanceResponse(out))
}

func issuanceResponse(out *workflow.Issuance) dto.IssuanceResponse {
	resp := dto.IssuanceResponse{
		Request:    dto.ToRequestDTO(out.Request),
		IssuedItem: dto.ToIssuedItemDTO(out.IssuedItem),
	}
	if out.Stock != nil {
		resp.RemainingStock = out.Stock.Quantity
	}
	return resp
}
