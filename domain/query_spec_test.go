package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestSearchQuerySpecNormalize(t *testing.T) {
	spec := SearchQuerySpec{
		Query:   "Breaking News",
		Sources: []string{"The Hindu", "BBC"},
		Tags:    []string{"Climate-Change", "Cricket"},
	}

	got := spec.Normalize()

	if got.Query != "breaking news" {
		t.Errorf("Query = %q, want %q", got.Query, "breaking news")
	}
	if !reflect.DeepEqual(got.Sources, []string{"the hindu", "bbc"}) {
		t.Errorf("Sources = %v", got.Sources)
	}
	if !reflect.DeepEqual(got.Tags, []string{"climate change", "cricket"}) {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.Page != DefaultPage || got.Rows != DefaultRows {
		t.Errorf("Page/Rows = %d/%d, want defaults", got.Page, got.Rows)
	}
	if got.Sort != SortDesc {
		t.Errorf("Sort = %q, want desc", got.Sort)
	}

	// receiver must stay untouched
	if spec.Query != "Breaking News" {
		t.Errorf("receiver mutated: %q", spec.Query)
	}
}

func TestSearchQuerySpecNormalizeIdempotent(t *testing.T) {
	spec := SearchQuerySpec{
		Query: "Sports",
		Tags:  []string{"Test-Match"},
		Page:  3,
		Rows:  10,
		Sort:  SortAsc,
	}

	once := spec.Normalize()
	twice := once.Normalize()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize not idempotent: %+v vs %+v", once, twice)
	}
}

func TestSearchQuerySpecValidate(t *testing.T) {
	spec := SearchQuerySpec{Query: "news"}

	err := spec.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Fields[0].Field != "domain" {
		t.Errorf("Field = %q, want domain", validationErr.Fields[0].Field)
	}

	spec.DomainIDs = []string{"1"}
	if err := spec.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSearchQuerySpecOffset(t *testing.T) {
	tests := []struct {
		page, rows, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
	}
	for _, tt := range tests {
		spec := SearchQuerySpec{Page: tt.page, Rows: tt.rows}
		if got := spec.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d rows=%d) = %d, want %d", tt.page, tt.rows, got, tt.want)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Breaking-News", "breaking news"},
		{"cricket", "cricket"},
		{"A-B-C", "a b c"},
		{"breaking news", "breaking news"},
	}
	for _, tt := range tests {
		if got := NormalizeTag(tt.in); got != tt.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePageAndRowsParams(t *testing.T) {
	tests := []struct {
		raw       string
		wantPage  int
		wantRows  int
	}{
		{"", DefaultPage, DefaultRows},
		{"abc", DefaultPage, DefaultRows},
		{"0", DefaultPage, DefaultRows},
		{"-3", DefaultPage, DefaultRows},
		{"2", 2, 2},
	}
	for _, tt := range tests {
		if got := ParsePageParam(tt.raw); got != tt.wantPage {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.raw, got, tt.wantPage)
		}
		if got := ParseRowsParam(tt.raw); got != tt.wantRows {
			t.Errorf("ParseRowsParam(%q) = %d, want %d", tt.raw, got, tt.wantRows)
		}
	}
}

func TestParseCategoryIDs(t *testing.T) {
	got := ParseCategoryIDs([]string{"1", "x", "42", ""})
	if !reflect.DeepEqual(got, []int64{1, 42}) {
		t.Errorf("ParseCategoryIDs = %v, want [1 42]", got)
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		raw  string
		want SortOrder
	}{
		{"asc", SortAsc},
		{"ASC", SortAsc},
		{"desc", SortDesc},
		{"", SortDesc},
		{"bogus", SortDesc},
	}
	for _, tt := range tests {
		if got := ParseSortOrder(tt.raw); got != tt.want {
			t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
