package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，页码从 0 开始，统一处理非法取值。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 0 {
		page = 0
	}
	return query.Limit(pageSize).Offset(page * pageSize)
}
