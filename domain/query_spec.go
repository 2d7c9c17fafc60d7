package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultPage = 1
	DefaultRows = 20
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps a raw sort token to a SortOrder. Anything that is
// not "asc" sorts descending, matching the API default.
func ParseSortOrder(raw string) SortOrder {
	if strings.ToLower(raw) == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// SearchQuerySpec is the transient, request-scoped description of one
// article search: free text, filters, sort direction and window. It is
// built at the HTTP boundary, normalized and validated once, and
// discarded after the query executes.
type SearchQuerySpec struct {
	Query       string
	Sources     []string
	CategoryIDs []int64
	DomainIDs   []string
	Tags        []string
	Sort        SortOrder
	Page        int
	Rows        int
}

// Normalize lower-cases the free text and source names and normalizes
// tag phrases. It returns a new spec; the receiver is not modified.
func (s SearchQuerySpec) Normalize() SearchQuerySpec {
	s.Query = strings.ToLower(s.Query)

	sources := make([]string, len(s.Sources))
	for i, src := range s.Sources {
		sources[i] = strings.ToLower(src)
	}
	s.Sources = sources

	tags := make([]string, len(s.Tags))
	for i, tag := range s.Tags {
		tags[i] = NormalizeTag(tag)
	}
	s.Tags = tags

	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.Rows < 1 {
		s.Rows = DefaultRows
	}
	if s.Sort != SortAsc && s.Sort != SortDesc {
		s.Sort = SortDesc
	}

	return s
}

// Validate enforces the one required filter of the search API: at least
// one domain id must be present.
func (s SearchQuerySpec) Validate() error {
	if len(s.DomainIDs) == 0 {
		return NewValidationError("domain", "domain id is required")
	}
	return nil
}

// Offset is the first hit index of the requested window.
func (s SearchQuerySpec) Offset() int {
	return (s.Page - 1) * s.Rows
}

// NormalizeTag lower-cases a tag phrase and turns hyphens into spaces,
// so "Breaking-News" matches the indexed phrase "breaking news".
// Idempotent: normalizing twice yields the same value.
func NormalizeTag(tag string) string {
	return strings.ReplaceAll(strings.ToLower(tag), "-", " ")
}

// ParsePageParam parses the 1-based page number, silently falling back
// to the default on non-numeric or non-positive input.
func ParsePageParam(raw string) int {
	return parsePositive(raw, DefaultPage)
}

// ParseRowsParam parses the page size with the same silent fallback.
func ParseRowsParam(raw string) int {
	return parsePositive(raw, DefaultRows)
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ParseCategoryIDs parses raw category id values, dropping anything
// non-numeric.
func ParseCategoryIDs(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
