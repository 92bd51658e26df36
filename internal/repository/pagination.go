package repository

import "gorm.io/gorm"

// applyPagination 페이지 파라미터 적용. 잘못된 페이지/오프셋을 한 곳에서 보정한다.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}
