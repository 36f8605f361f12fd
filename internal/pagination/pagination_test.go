package pagination

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPageRequest_Defaults(t *testing.T) {
	var p PageRequest
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("expected page 1 size 20, got %d/%d", p.Page, p.PageSize)
	}
	p = PageRequest{Page: 3, PageSize: 10}
	if p.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	r := NewPageResponse[string](nil, 1, 20, 41)
	if r.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", r.TotalPages)
	}
	if r.Data == nil {
		t.Error("expected empty slice, got nil")
	}
	if NewPageResponse([]int{}, 1, 0, 5).TotalPages != 0 {
		t.Error("expected zero pages for zero page size")
	}
}

type row struct {
	ID   int
	Date string
}

func TestOrder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:pagination?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&row{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Create(&[]row{{ID: 1, Date: "2021-06-30"}, {ID: 2, Date: "2022-06-30"}, {ID: 3, Date: "2021-12-31"}})

	tests := []struct {
		sort  string
		first int
	}{
		{"", 1},
		{"date", 1},
		{"-date", 2},
		{"-id", 3},
		{"date; DROP TABLE rows", 1},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			var rows []row
			db.Scopes(Order(PageRequest{Sort: tt.sort}, []string{"date", "id"}, "id")).Find(&rows)
			if len(rows) != 3 || rows[0].ID != tt.first {
				t.Errorf("expected first row %d, got %+v", tt.first, rows)
			}
		})
	}
}
