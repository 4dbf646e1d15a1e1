package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

// PageMeta defines the structure for pagination metadata.
type PageMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// Page defines the structure for a paginated list of any type.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// pageCount returns the number of pages needed for totalItems. An empty
// collection still has exactly one (empty) page.
func pageCount(totalItems int64, pageSize int) int {
	if pageSize <= 0 {
		pageSize = 1
	}
	pages := (int(totalItems) + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// clampPage maps an out-of-range page number to the nearest valid page:
// anything below 1 becomes 1, anything past the end becomes the last page.
func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// pageParam reads the "page" query parameter, defaulting to 1 when absent
// or invalid.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

// Paginate executes a paginated query and returns the results. The requested
// page is clamped to the last available page rather than returning an empty
// slice.
func Paginate[T any](db *gorm.DB, page, pageSize int) (*Page[T], error) {
	var totalItems int64
	if err := db.Session(&gorm.Session{}).Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	totalPages := pageCount(totalItems, pageSize)
	page = clampPage(page, totalPages)

	var items []T
	offset := (page - 1) * pageSize
	if err := db.Offset(offset).Limit(pageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items: items,
		Meta: PageMeta{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}, nil
}
