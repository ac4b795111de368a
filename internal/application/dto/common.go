package dto

// PageRequest paginación opcional para listados. Limit 0 devuelve todo.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// MaxPageLimit tope de Limit.
const MaxPageLimit = 500

// Normalize ajusta valores fuera de rango.
func (p *PageRequest) Normalize() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Bounds índices [start, end) de la página dentro de un listado de total elementos.
func (p PageRequest) Bounds(total int) (start, end int) {
	start = min(p.Offset, total)
	if p.Limit == 0 {
		return start, total
	}
	return start, min(start+p.Limit, total)
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
