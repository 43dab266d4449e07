package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/domain"
)

func newTestContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePageRequest_Defaults(t *testing.T) {
	c := newTestContext(t, "")

	req, err := ParsePageRequest(c)
	if err != nil {
		t.Fatalf("ParsePageRequest: %v", err)
	}
	if req.Page != 1 || req.PageSize != 10 {
		t.Errorf("got page=%d size=%d; want page=1 size=10", req.Page, req.PageSize)
	}
	if req.Sort != "created_at:desc" {
		t.Errorf("Sort=%q; want created_at:desc", req.Sort)
	}
}

func TestParsePageRequest_Explicit(t *testing.T) {
	c := newTestContext(t, "page=3&page_size=25&sort=title:asc")

	req, err := ParsePageRequest(c)
	if err != nil {
		t.Fatalf("ParsePageRequest: %v", err)
	}
	if req.Page != 3 || req.PageSize != 25 {
		t.Errorf("got page=%d size=%d; want page=3 size=25", req.Page, req.PageSize)
	}
	if req.Offset() != 50 {
		t.Errorf("Offset=%d; want 50", req.Offset())
	}
}

func TestParsePageRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero page", "page=0"},
		{"negative page", "page=-1"},
		{"non-numeric page", "page=abc"},
		{"zero page_size", "page_size=0"},
		{"negative page_size", "page_size=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.query)
			_, err := ParsePageRequest(c)
			if !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestParsePageRequest_CapsPageSize(t *testing.T) {
	c := newTestContext(t, "page_size=500")

	req, err := ParsePageRequest(c)
	if err != nil {
		t.Fatalf("ParsePageRequest: %v", err)
	}
	if req.PageSize != 100 {
		t.Errorf("PageSize=%d; want 100", req.PageSize)
	}
}

func TestParsePageRequest_Filters(t *testing.T) {
	c := newTestContext(t, "page=2&status=PUBLISHED&title__like=go")

	req, err := ParsePageRequest(c)
	if err != nil {
		t.Fatalf("ParsePageRequest: %v", err)
	}
	if req.Filter["status"] != "PUBLISHED" {
		t.Errorf("Filter[status]=%q; want PUBLISHED", req.Filter["status"])
	}
	if req.Filter["title__like"] != "go" {
		t.Errorf("Filter[title__like]=%q; want go", req.Filter["title__like"])
	}
	if _, ok := req.Filter["page"]; ok {
		t.Error("reserved param page leaked into filters")
	}
}

func TestPageEnvelope_TotalPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		pageSize  int
		wantPages int
	}{
		{"exact fit", 30, 1, 10, 3},
		{"partial last page", 25, 1, 10, 3},
		{"single item", 1, 1, 10, 1},
		{"empty", 0, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result *domain.PageResult[string] = PageEnvelope([]string{}, tt.total, tt.page, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages=%d; want %d", result.TotalPages, tt.wantPages)
			}
			if result.TotalItems != tt.total {
				t.Errorf("Total=%d; want %d", result.TotalItems, tt.total)
			}
			if result.CurrentPage != tt.page || result.ItemsPerPage != tt.pageSize {
				t.Errorf("got page=%d size=%d; want page=%d size=%d", result.CurrentPage, result.ItemsPerPage, tt.page, tt.pageSize)
			}
		})
	}
}
