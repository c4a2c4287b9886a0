package dto

// PageRequest paginación por página para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	// MaxPage acota el desplazamiento: MaxPage*maxPageLimit cabe de sobra en un int.
	MaxPage = 1_000_000
)

// Normalize aplica valores por defecto (página 1, límite 20, máximo 100) y acota la página a MaxPage.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
}

// Offset desplazamiento de la página actual.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	Pages       int  `json:"pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// NewPagination calcula total de páginas y navegación.
func NewPagination(p PageRequest, total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		Pages:       pages,
		HasNextPage: p.Page < pages,
		HasPrevPage: p.Page > 1,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
