package types

const (
	DefaultPageSize = 9
	MaxPage         = 1000
	MaxPageSize     = 100
)

// ClampPage keeps a requested page within 1..MaxPage.
func ClampPage(page int) int {
	return clamp(page, 1, MaxPage)
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices one 1-based page out of items. Total is always the full
// length; a page past the end yields no items.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	ret := Page[T]{
		Items:      []T{},
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: total / pageSize,
	}
	if total%pageSize != 0 {
		ret.TotalPages++
	}
	if page > ret.TotalPages {
		return ret
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	ret.Items = append(ret.Items, items[start:end]...)
	return ret
}
