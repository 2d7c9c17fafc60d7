package domain

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int64
		rows  int
		want  int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 2, 3},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.rows); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.rows, got, tt.want)
		}
	}
}

func TestHasNextAndPreviousPage(t *testing.T) {
	if !HasNextPage(1, 2, 5) {
		t.Error("page 1 of 5 hits with rows 2 should have a next page")
	}
	if HasNextPage(3, 2, 5) {
		t.Error("last page should not have a next page")
	}
	if HasPreviousPage(1) {
		t.Error("first page should not have a previous page")
	}
	if !HasPreviousPage(2) {
		t.Error("second page should have a previous page")
	}
}

func TestReplacePageParam(t *testing.T) {
	got, err := ReplacePageParam("http://api.local/v1/articles/search?domain=1&page=2&rows=10", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "http://api.local/v1/articles/search?domain=1&page=3&rows=10"
	if got != want {
		t.Errorf("ReplacePageParam() = %q, want %q", got, want)
	}
}

func TestReplacePageParamAddsMissingParam(t *testing.T) {
	got, err := ReplacePageParam("http://api.local/v1/articles/search?domain=1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "http://api.local/v1/articles/search?domain=1&page=2"
	if got != want {
		t.Errorf("ReplacePageParam() = %q, want %q", got, want)
	}
}

func TestNewResultPage(t *testing.T) {
	docs := []SearchDocument{{ID: "a"}, {ID: "b"}}
	url := "http://api.local/v1/articles/search?domain=1&page=2"

	page := NewResultPage(docs, nil, 5, 2, 2, url)

	if page.Count != 5 || page.TotalPages != 3 || page.CurrentPage != 2 {
		t.Errorf("page meta = count %d, total %d, current %d", page.Count, page.TotalPages, page.CurrentPage)
	}
	if page.Next == nil || *page.Next != "http://api.local/v1/articles/search?domain=1&page=3" {
		t.Errorf("Next = %v", page.Next)
	}
	if page.Previous == nil || *page.Previous != "http://api.local/v1/articles/search?domain=1&page=1" {
		t.Errorf("Previous = %v", page.Previous)
	}
}

func TestNewResultPageEdges(t *testing.T) {
	page := NewResultPage(nil, nil, 2, 1, 20, "http://api.local/v1/articles/search?domain=1")

	if page.Results == nil {
		t.Error("Results must serialize as an empty list, not null")
	}
	if page.Next != nil {
		t.Errorf("Next = %v, want nil", *page.Next)
	}
	if page.Previous != nil {
		t.Errorf("Previous = %v, want nil", *page.Previous)
	}
}
