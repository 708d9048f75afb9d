package db

import (
	"gorm.io/gorm"
)

// Paginate limits a query to one page. Non-positive values leave the query
// unbounded, which list endpoints use for "return everything".
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// NewestFirst orders by created_at descending with id as tie breaker.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if table == "" {
			return db.Order("created_at DESC").Order("id DESC")
		}
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}
