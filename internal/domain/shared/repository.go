package shared

const (
	defaultPageSize = 20
	defaultOrderBy  = "created_at"
)

// Filter is the list query understood by every repository. Filters holds
// the resource specific criteria keyed by column or criterion name; the
// repositories whitelist OrderBy before it reaches SQL.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter is page 1 of 20, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: defaultPageSize,
		OrderBy:  defaultOrderBy,
		OrderDir: "desc",
		Filters:  map[string]any{},
	}
}

// Offset is the number of rows skipped before Page. Pages before the
// first are treated as the first.
func (f Filter) Offset() int {
	return max(f.Page-1, 0) * f.PageSize
}

// Paginated is one page of a list result together with the size of the
// whole result.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	p := Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}
