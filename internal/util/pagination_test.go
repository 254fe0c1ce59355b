package util

import "testing"

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name                 string
		page, pageSize       uint
		wantPage, wantPageSz uint
	}{
		{"defaults", 0, 0, 1, 20},
		{"kept", 3, 50, 3, 50},
		{"capped", 2, 1000, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := NormalizePagination(tt.page, tt.pageSize)
			if p != tt.wantPage || s != tt.wantPageSz {
				t.Errorf("NormalizePagination() = (%d, %d), want (%d, %d)", p, s, tt.wantPage, tt.wantPageSz)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize uint
		want     int
	}{
		{0, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 0, 3},
	}

	for _, tt := range tests {
		if got := CalculateTotalPage(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("CalculateTotalPage(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}
