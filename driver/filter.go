package driver

import (
	"fmt"
	"strings"
)

// escapeFilterValue escapes special characters in Meilisearch filter
// values.
func escapeFilterValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}

// buildSearchFilter assembles the engine filter expression for a query:
// every dimension forms an OR group over its values, groups are joined
// with AND. Tag values must already be normalized.
func buildSearchFilter(q SearchQueryDriver) string {
	var groups []string

	if g := stringTermGroup("domain_id", q.DomainIDs); g != "" {
		groups = append(groups, g)
	}

	if len(q.CategoryIDs) > 0 {
		terms := make([]string, 0, len(q.CategoryIDs))
		for _, id := range q.CategoryIDs {
			terms = append(terms, fmt.Sprintf("category_id = %d", id))
		}
		groups = append(groups, orGroup(terms))
	}

	if g := stringTermGroup("source", q.Sources); g != "" {
		groups = append(groups, g)
	}

	if g := stringTermGroup("hash_tags", q.Tags); g != "" {
		groups = append(groups, g)
	}

	return strings.Join(groups, " AND ")
}

func stringTermGroup(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	terms := make([]string, 0, len(values))
	for _, v := range values {
		terms = append(terms, fmt.Sprintf("%s = \"%s\"", field, escapeFilterValue(v)))
	}
	return orGroup(terms)
}

func orGroup(terms []string) string {
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}
