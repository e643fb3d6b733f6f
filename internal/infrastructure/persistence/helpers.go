package persistence

import (
	"fmt"
	"strings"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies ordering and pagination from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}
	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// withFilters returns the filter with a non-nil Filters map
func withFilters(filter shared.Filter, key string, value interface{}) shared.Filter {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters[key] = value
	return filter
}
