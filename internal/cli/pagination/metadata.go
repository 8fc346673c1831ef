package pagination

import "math"

// Meta describes the page emitted by a paginated command.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta derives pagination metadata from the parameters and the total item
// count before slicing.
func NewMeta(p Params, totalCount int) Meta {
	pageSize := p.PageSize
	if pageSize == 0 && p.Limit > 0 {
		pageSize = p.Limit
	}
	if pageSize == 0 {
		pageSize = totalCount
	}

	currentPage := p.Page
	if currentPage == 0 && p.Offset > 0 && pageSize > 0 {
		currentPage = (p.Offset / pageSize) + 1
	}
	if currentPage == 0 {
		currentPage = 1
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(pageSize)))
	}

	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
