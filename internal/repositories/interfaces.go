package repositories

import (
	"math"

	"github.com/InternLink-2025/placement-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// UserFilters narrows user list queries. Search matches name or email,
// case-insensitive substring; equality filters AND with the search.
type UserFilters struct {
	Search    string           `json:"search"`
	Role      *models.UserRole `json:"role"`
	Suspended *bool            `json:"suspended"`
	Page      int              `json:"page"`
	PageSize  int              `json:"page_size"`
	SortBy    string           `json:"sort_by"`    // "created_at", "full_name", "email"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type ProjectFilters struct {
	Search         string                `json:"search"` // title or description
	Status         *models.ProjectStatus `json:"status"`
	OrganizationID *string               `json:"organization_id"`
	CoordinatorID  *string               `json:"coordinator_id"`
	Page           int                   `json:"page"`
	PageSize       int                   `json:"page_size"`
	SortBy         string                `json:"sort_by"`
	SortOrder      string                `json:"sort_order"`
}

type ApplicationFilters struct {
	StudentID *string                   `json:"student_id"`
	ProjectID *uint                     `json:"project_id"`
	Status    *models.ApplicationStatus `json:"status"`
	Page      int                       `json:"page"`
	PageSize  int                       `json:"page_size"`
	SortBy    string                    `json:"sort_by"`
	SortOrder string                    `json:"sort_order"`
}

// ===== PAGINATION =====

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageInfo describes one page of a list result. TotalPages is always
// ceil(Total/PageSize); list consumers index it without further checks.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NormalizePage clamps page and page size to their valid ranges.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// NewPageInfo builds the pagination envelope for a list result.
func NewPageInfo(total int64, page, pageSize int) PageInfo {
	page, pageSize = NormalizePage(page, pageSize)
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PageOffset converts a 1-based page number into a row offset.
func PageOffset(page, pageSize int) int {
	page, pageSize = NormalizePage(page, pageSize)
	return (page - 1) * pageSize
}
