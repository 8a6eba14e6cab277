package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-mmg/internal/application/dto"
	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
)

// CatalogHandler taxonomía de artículos y departamentos.
type CatalogHandler struct {
	resp dto.CatalogResponse
}

// NewCatalogHandler el catálogo es inmutable, la respuesta se arma una vez.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	all := cat.All()
	categories := make([]dto.CategoryDTO, 0, len(all))
	for _, c := range all {
		categories = append(categories, dto.CategoryDTO{Name: c.Name, Items: c.Items})
	}
	return &CatalogHandler{resp: dto.CatalogResponse{Categories: categories, Departments: catalog.Departments()}}
}

// Get godoc
// @Summary      Catálogo de artículos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.resp)
}
