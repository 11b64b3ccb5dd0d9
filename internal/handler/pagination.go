package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// PageQuery is a clamped page request read from the query string.
type PageQuery struct {
	Page  int
	Limit int
}

func (q PageQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

// pageQuery reads ?page= and ?limit=. Bad values fall back to the first page
// and the default size; limit is capped at maxPageSize.
func pageQuery(c *gin.Context) PageQuery {
	q := PageQuery{Page: 1, Limit: defaultPageSize}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		q.Limit = min(limit, maxPageSize)
	}
	return q
}

// PaginationMeta describes where a page sits in the full result set.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse is one page of T plus its metadata.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse wraps data for q. Data is never serialized as null.
func NewPaginatedResponse[T any](data []T, totalItems int64, q PageQuery) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if q.Limit > 0 {
		pages = int((totalItems + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  pages,
			CurrentPage: q.Page,
			PageSize:    q.Limit,
		},
	}
}

// paginate counts the rows matched by query, loads the requested page and
// converts each row with toResponse.
func paginate[Row, Out any](query *gorm.DB, q PageQuery, toResponse func(Row) Out) (PaginatedResponse[Out], error) {
	var total int64
	if err := query.Model(new(Row)).Count(&total).Error; err != nil {
		return PaginatedResponse[Out]{}, err
	}

	var rows []Row
	if err := query.Offset(q.offset()).Limit(q.Limit).Find(&rows).Error; err != nil {
		return PaginatedResponse[Out]{}, err
	}

	out := make([]Out, 0, len(rows))
	for _, row := range rows {
		out = append(out, toResponse(row))
	}
	return NewPaginatedResponse(out, total, q), nil
}
