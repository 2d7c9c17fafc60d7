package domain

import (
	"fmt"
	"reflect"
	"testing"
)

func TestExtractFacetsOrdering(t *testing.T) {
	counts := map[string]map[string]int64{
		FacetCategory: {
			"sports":   5,
			"business": 9,
			"politics": 5,
		},
	}

	got := ExtractFacets(counts)

	want := []FacetBucket{
		{Value: "business", Count: 9},
		{Value: "politics", Count: 5},
		{Value: "sports", Count: 5},
	}
	if !reflect.DeepEqual(got[FacetCategory], want) {
		t.Errorf("category buckets = %v, want %v", got[FacetCategory], want)
	}
}

func TestExtractFacetsOmitsEmptyDimensions(t *testing.T) {
	counts := map[string]map[string]int64{
		FacetCategory: {"sports": 1},
		FacetSource:   {},
	}

	got := ExtractFacets(counts)

	if _, ok := got[FacetSource]; ok {
		t.Error("empty source dimension should be omitted")
	}
	if _, ok := got[FacetCategory]; !ok {
		t.Error("category dimension missing")
	}
}

func TestExtractFacetsCapsHashTags(t *testing.T) {
	tags := make(map[string]int64, MaxHashTagBuckets+10)
	for i := 0; i < MaxHashTagBuckets+10; i++ {
		tags[fmt.Sprintf("tag-%03d", i)] = int64(i + 1)
	}

	got := ExtractFacets(map[string]map[string]int64{FacetHashTags: tags})

	buckets := got[FacetHashTags]
	if len(buckets) != MaxHashTagBuckets {
		t.Fatalf("hash_tags buckets = %d, want %d", len(buckets), MaxHashTagBuckets)
	}
	// cap keeps the highest counts
	if buckets[0].Count != int64(MaxHashTagBuckets+10) {
		t.Errorf("top bucket count = %d, want %d", buckets[0].Count, MaxHashTagBuckets+10)
	}
}

func TestExtractFacetsNilInput(t *testing.T) {
	got := ExtractFacets(nil)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
