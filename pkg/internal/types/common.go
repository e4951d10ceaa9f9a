// Package types defines the request/response shapes of the HTTP surface.
package types

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ListQuery carries the shared listing parameters (pagination, sort,
// search). Zero values fall back to defaults via Normalize.
type ListQuery struct {
	Page   int    `form:"page"`
	Size   int    `form:"size"`
	Sort   string `form:"sort"   rule:"omitempty,oneof=name path size created_at updated_at"`
	Order  string `form:"order"  rule:"omitempty,oneof=asc desc"`
	Search string `form:"search" rule:"omitempty,max=255"`
}

// Normalize clamps pagination and defaults the sort column.
func (q *ListQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}

	if q.Size <= 0 || q.Size > MaxPageSize {
		q.Size = DefaultPageSize
	}

	if q.Sort == "" {
		q.Sort = "name"
	}

	if q.Order == "" {
		q.Order = "asc"
	}
}

// Offset returns the row offset for the normalized page.
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Size
}

// OrderClause renders the validated sort as an ORDER BY fragment. The
// column set is closed by validation, so interpolation is safe.
func (q *ListQuery) OrderClause() string {
	return q.Sort + " " + q.Order
}
