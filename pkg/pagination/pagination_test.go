package pagination_test

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/JaimeStill/folio/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
		t.Errorf("defaults = %+v, want 20/100", cfg)
	}

	t.Setenv("TEST_PAGE_SIZE", "50")
	env := &pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE"}
	cfg = pagination.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", cfg.DefaultPageSize)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(nil); err == nil {
		t.Error("default above max should fail validation")
	}

	huge := pagination.Config{MaxPageSize: pagination.MaxPageSizeCap + 1}
	if err := huge.Finalize(nil); err == nil {
		t.Error("max_page_size above the cap should fail validation")
	}

	t.Setenv("FOLIO_PAGINATION_MAX_PAGE_SIZE", "250")
	cfg = pagination.Config{}
	if err := cfg.Finalize(pagination.DefaultEnv); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.MaxPageSize != 250 {
		t.Errorf("MaxPageSize = %d, want 250 from FOLIO env", cfg.MaxPageSize)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", pagination.PageRequest{}, 1, 20},
		{"negative page corrected", pagination.PageRequest{Page: -1, PageSize: 10}, 1, 10},
		{"page size clamped to max", pagination.PageRequest{Page: 1, PageSize: 500}, 1, 100},
		{"valid values preserved", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"15"},
		"search":    {"summarize"},
	}

	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 2 || req.PageSize != 15 {
		t.Errorf("page = %d/%d, want 2/15", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "summarize" {
		t.Errorf("Search = %v, want summarize", req.Search)
	}

	empty := pagination.PageRequestFromQuery(url.Values{}, defaultConfig())
	if empty.Page != 1 || empty.PageSize != 20 || empty.Search != nil {
		t.Errorf("empty query = %+v", empty)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact division", 100, 20, 5},
		{"remainder", 101, 20, 6},
		{"single page", 5, 20, 1},
		{"empty result", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}

	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data should be empty slice, not nil")
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		page pagination.PageRequest
		want []int
	}{
		{"first page", pagination.PageRequest{Page: 1, PageSize: 2}, []int{1, 2}},
		{"last partial page", pagination.PageRequest{Page: 3, PageSize: 2}, []int{5}},
		{"past the end", pagination.PageRequest{Page: 9, PageSize: 2}, []int{}},
		{"page overflowing the offset", pagination.PageRequest{Page: math.MaxInt, PageSize: 20}, []int{}},
		{"page size overflowing the end", pagination.PageRequest{Page: 1, PageSize: math.MaxInt}, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.Slice(items, tt.page)
			if result.Total != 5 {
				t.Errorf("Total = %d, want 5", result.Total)
			}
			if len(result.Data) != len(tt.want) {
				t.Fatalf("Data = %v, want %v", result.Data, tt.want)
			}
			for i := range tt.want {
				if result.Data[i] != tt.want[i] {
					t.Errorf("Data[%d] = %d, want %d", i, result.Data[i], tt.want[i])
				}
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name string
		page pagination.PageRequest
		want int
	}{
		{"first page", pagination.PageRequest{Page: 1, PageSize: 20}, 0},
		{"third page", pagination.PageRequest{Page: 3, PageSize: 20}, 40},
		{"unnormalized", pagination.PageRequest{}, 0},
		{"saturates", pagination.PageRequest{Page: math.MaxInt, PageSize: 20}, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSliceFromHugeQueryPage(t *testing.T) {
	values := url.Values{"page": {strconv.Itoa(math.MaxInt)}}
	req := pagination.PageRequestFromQuery(values, defaultConfig())

	result := pagination.Slice([]int{1, 2, 3}, req)

	if len(result.Data) != 0 || result.Total != 3 {
		t.Errorf("result = %+v, want empty page of 3", result)
	}
}
