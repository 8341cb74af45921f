package domain

// Meta is the pagination block of list responses.
type Meta struct {
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// Page is the common list envelope: {items, meta}.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// DataPage is the envelope used by the orders endpoints: {data, meta}.
type DataPage[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// TeachingMeta is the pagination block of /courses/my-courses.
type TeachingMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// TeachingPage is the envelope of /courses/my-courses: {items, meta{total,page,limit}}.
type TeachingPage[T any] struct {
	Items []T          `json:"items"`
	Meta  TeachingMeta `json:"meta"`
}

// AsMeta converts the teaching pagination block to the common shape.
func (m TeachingMeta) AsMeta() Meta {
	out := Meta{TotalItems: m.Total, ItemsPerPage: m.Limit, CurrentPage: m.Page}
	if m.Limit > 0 {
		out.TotalPages = (m.Total + m.Limit - 1) / m.Limit
	}
	return out
}
