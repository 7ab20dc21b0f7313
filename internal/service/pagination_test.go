package service

import "testing"

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name                  string
		page, perPage         int
		wantPage, wantPerPage int
		wantLimit, wantOffset int
	}{
		{"defaults applied", 0, 0, 1, 10, 10, 0},
		{"negative page", -5, 20, 1, 20, 20, 0},
		{"per page capped", 2, 500, 2, 100, 100, 100},
		{"plain values", 3, 25, 3, 25, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage, limit, offset := normalizePaging(tt.page, tt.perPage)
			if page != tt.wantPage || perPage != tt.wantPerPage || limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("got (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					page, perPage, limit, offset,
					tt.wantPage, tt.wantPerPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestBuildPagination(t *testing.T) {
	p := buildPagination(2, 10, 45)
	if p.TotalPages != 5 {
		t.Fatalf("expected 5 total pages, got %d", p.TotalPages)
	}
	if p.Page != 2 || p.PerPage != 10 || p.TotalItems != 45 {
		t.Fatalf("unexpected envelope: %+v", p)
	}

	empty := buildPagination(1, 10, 0)
	if empty.TotalPages != 1 {
		t.Fatalf("empty result set must still report one page, got %d", empty.TotalPages)
	}
}
