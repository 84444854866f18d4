package persistence

import (
	"errors"
	"strings"

	"github.com/restopos/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// paginate applies offset/limit with the same defaults the HTTP layer uses
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// withinRange restricts column to the closed interval of r when set
func withinRange(query *gorm.DB, column string, r *shared.DateRange) *gorm.DB {
	if r == nil {
		return query
	}
	if !r.From.IsZero() {
		query = query.Where(column+" >= ?", r.From)
	}
	if !r.To.IsZero() {
		query = query.Where(column+" <= ?", r.To)
	}
	return query
}

// likePattern builds a case-insensitive contains pattern
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// forUpdate adds SELECT ... FOR UPDATE; dialects without row locks ignore it
func forUpdate(query *gorm.DB) *gorm.DB {
	return query.Clauses(clause.Locking{Strength: "UPDATE"})
}

// notFound translates gorm.ErrRecordNotFound into shared.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
