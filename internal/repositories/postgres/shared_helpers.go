package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/InternLink-2025/placement-service/internal/repositories"
)

// handleDBError wraps a gorm error with operation context, mapping the
// well-known cases onto the repository sentinel errors so callers can
// match with errors.Is without importing gorm.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
		return fmt.Errorf("%s: %w", operation, repositories.ErrDuplicate)
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// applyPaginationAndSorting applies validated sorting plus limit/offset.
// Sort keys go through a per-call whitelist so no request-supplied string
// ever reaches the ORDER BY clause.
func applyPaginationAndSorting(query *gorm.DB, allowedSort map[string]string, sortBy, sortOrder string, page, pageSize int) *gorm.DB {
	column, ok := allowedSort[sortBy]
	if !ok {
		column = "created_at"
	}

	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}

	query = query.Order(fmt.Sprintf("%s %s", column, order))

	page, pageSize = repositories.NormalizePage(page, pageSize)
	return query.Limit(pageSize).Offset(repositories.PageOffset(page, pageSize))
}

// applySearch adds a case-insensitive substring match OR-ed across the
// given columns. Equality filters applied separately AND with this clause.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + search + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}
