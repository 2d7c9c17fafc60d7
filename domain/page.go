package domain

import (
	"net/url"
	"strconv"
)

// ResultPage is the transport-independent shape of one search response
// page. Next and Previous are absolute URLs rewritten from the request's
// own URL, or nil where the edge of the result set is reached.
type ResultPage struct {
	Results     []SearchDocument         `json:"results"`
	Filters     map[string][]FacetBucket `json:"filters"`
	Count       int64                    `json:"count"`
	TotalPages  int64                    `json:"total_pages"`
	CurrentPage int                      `json:"current_page"`
	Next        *string                  `json:"next"`
	Previous    *string                  `json:"previous"`
}

// NewResultPage assembles a page from the raw hits, extracted facets and
// the original request URL.
func NewResultPage(docs []SearchDocument, facets map[string][]FacetBucket, count int64, page, rows int, requestURL string) ResultPage {
	if docs == nil {
		docs = []SearchDocument{}
	}

	rp := ResultPage{
		Results:     docs,
		Filters:     facets,
		Count:       count,
		TotalPages:  TotalPages(count, rows),
		CurrentPage: page,
	}

	if HasNextPage(page, rows, count) {
		if next, err := ReplacePageParam(requestURL, page+1); err == nil {
			rp.Next = &next
		}
	}
	if HasPreviousPage(page) {
		if previous, err := ReplacePageParam(requestURL, page-1); err == nil {
			rp.Previous = &previous
		}
	}

	return rp
}

// TotalPages is ceil(count/rows); zero hits mean zero pages.
func TotalPages(count int64, rows int) int64 {
	if rows < 1 || count < 1 {
		return 0
	}
	return (count + int64(rows) - 1) / int64(rows)
}

// HasNextPage reports whether hits exist past the current window.
func HasNextPage(page, rows int, count int64) bool {
	return int64(page)*int64(rows) < count
}

// HasPreviousPage reports whether the current page is not the first.
func HasPreviousPage(page int) bool {
	return page != 1
}

// ReplacePageParam rewrites the page query parameter of rawURL,
// preserving every other parameter.
func ReplacePageParam(rawURL string, page int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
