package repositories

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "valid values pass through", page: 2, pageSize: 25, wantPage: 2, wantPageSize: 25},
		{name: "zero page defaults", page: 0, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "negative page defaults", page: -3, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "zero page size defaults", page: 1, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{name: "oversized page size clamps to default", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 10},
		{name: "max page size allowed", page: 1, pageSize: 100, wantPage: 1, wantPageSize: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := NormalizePage(tt.page, tt.pageSize)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{name: "partial last page rounds up", total: 25, page: 2, pageSize: 10, wantTotalPages: 3},
		{name: "exact multiple", total: 30, page: 1, pageSize: 10, wantTotalPages: 3},
		{name: "single row", total: 1, page: 1, pageSize: 10, wantTotalPages: 1},
		{name: "empty result has zero pages", total: 0, page: 1, pageSize: 10, wantTotalPages: 0},
		{name: "page size one", total: 7, page: 3, pageSize: 1, wantTotalPages: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.total, tt.page, tt.pageSize)
			if info.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantTotalPages)
			}
			if info.Total != tt.total {
				t.Errorf("Total = %d, want %d", info.Total, tt.total)
			}
		})
	}
}

func TestNewPageInfoNormalizesInput(t *testing.T) {
	info := NewPageInfo(25, 0, 0)
	if info.Page != DefaultPage || info.PageSize != DefaultPageSize {
		t.Errorf("got page=%d size=%d, want defaults %d/%d", info.Page, info.PageSize, DefaultPage, DefaultPageSize)
	}
	if info.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", info.TotalPages)
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "second page", page: 2, pageSize: 10, want: 10},
		{name: "normalized invalid page", page: -1, pageSize: 10, want: 0},
		{name: "normalized invalid size", page: 3, pageSize: 0, want: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageOffset(tt.page, tt.pageSize); got != tt.want {
				t.Errorf("PageOffset(%d, %d) = %d, want %d", tt.page, tt.pageSize, got, tt.want)
			}
		})
	}
}
