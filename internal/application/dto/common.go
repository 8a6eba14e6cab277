package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset quedan fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse error 409 con la cantidad disponible para el aprobador.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// MessageResponse confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
