package dto

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PaginationMeta struct {
	TotalItems int64 `json:"total_items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}
