package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-mmg/internal/application/dto"
	"github.com/jhoicas/inventario-mmg/internal/application/stock"
)

// StockHandler libro de stock (MMG y Super_Admin).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        department  query     string  false  "Filtrar por departamento"
// @Param        limit       query     int     false  "Máximo 100 (por defecto 20)"
// @Param        offset      query     int     false  "Desplazamiento"
// @Success      200         {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit/offset inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("department"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	items := make([]dto.StockEntryDTO, 0, len(list))
	for _, e := range list {
		items = append(items, dto.ToStockEntryDTO(e))
	}
	return c.JSON(dto.StockListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Get godoc
// @Summary      Entrada de stock por ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        ledger  path      string  true  "Número de ledger"
// @Success      200     {object}  dto.StockEntryDTO
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/stock/{ledger} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	e, err := h.uc.Lookup(c.Context(), c.Params("ledger"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToStockEntryDTO(e))
}

// Intake godoc
// @Summary      Ingreso de stock
// @Description  Crea la entrada (201, action=created) o suma a la existente (200, action=updated).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockIntakeRequest  true  "item_name, category, department, quantity, ledger_number opcional"
// @Success      201   {object}  dto.StockIntakeResponse
// @Success      200   {object}  dto.StockIntakeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Intake(c *fiber.Ctx) error {
	var in dto.StockIntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e, created, err := h.uc.Intake(c.Context(), stock.IntakeInput{
		ItemName:     in.ItemName,
		Category:     in.Category,
		Department:   in.Department,
		Quantity:     in.Quantity,
		LedgerNumber: in.LedgerNumber,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.StockIntakeResponse{Action: "created", Entry: dto.ToStockEntryDTO(e)})
	}
	return c.JSON(dto.StockIntakeResponse{Action: "updated", Entry: dto.ToStockEntryDTO(e)})
}

// Debit godoc
// @Summary      Ajuste manual (débito)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockDebitRequest  true  "item_name, department, quantity"
// @Success      200   {object}  dto.StockEntryDTO
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/debit [post]
func (h *StockHandler) Debit(c *fiber.Ctx) error {
	var in dto.StockDebitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Debit(c.Context(), in.ItemName, in.Department, in.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToStockEntryDTO(res.Entry))
}

// Remove godoc
// @Summary      Baja de una entrada de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        ledger  path      string  true  "Número de ledger"
// @Success      200     {object}  dto.MessageResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/stock/{ledger} [delete]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("ledger")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada eliminada"})
}
