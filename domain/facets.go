package domain

import "sort"

// Facet dimension names as exposed by the search API.
const (
	FacetCategory = "category"
	FacetSource   = "source"
	FacetHashTags = "hash_tags"
)

// MaxHashTagBuckets caps the hash_tags dimension; category and source
// are returned in full.
const MaxHashTagBuckets = 50

// FacetBucket is one value of a facet dimension with its hit count.
type FacetBucket struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// ExtractFacets turns raw per-dimension value counts into ordered bucket
// lists, count-descending with a value tiebreak. Dimensions with no
// buckets are omitted from the result entirely; a key is present only if
// its bucket list is non-empty.
func ExtractFacets(counts map[string]map[string]int64) map[string][]FacetBucket {
	facets := make(map[string][]FacetBucket, len(counts))

	for dimension, values := range counts {
		if len(values) == 0 {
			continue
		}

		buckets := make([]FacetBucket, 0, len(values))
		for value, count := range values {
			buckets = append(buckets, FacetBucket{Value: value, Count: count})
		}
		sort.Slice(buckets, func(i, j int) bool {
			if buckets[i].Count != buckets[j].Count {
				return buckets[i].Count > buckets[j].Count
			}
			return buckets[i].Value < buckets[j].Value
		})

		if dimension == FacetHashTags && len(buckets) > MaxHashTagBuckets {
			buckets = buckets[:MaxHashTagBuckets]
		}
		facets[dimension] = buckets
	}

	return facets
}
