package dto

// CategoryDTO categoría con sus artículos.
type CategoryDTO struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// CatalogResponse GET /api/catalog.
type CatalogResponse struct {
	Categories  []CategoryDTO `json:"categories"`
	Departments []string      `json:"departments"`
}
