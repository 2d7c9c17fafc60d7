package domain

import "sort"

// Category is a taxonomy node. The hierarchy is a directed acyclic
// parent→child relation, not necessarily a tree: a child may hang off
// several parents.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryAssociation is one parent→child edge of the hierarchy. It is
// only ever used to widen a category filter, never to narrow it.
type CategoryAssociation struct {
	ParentID int64
	ChildID  int64
}

// ExpandCategories unions the requested category ids with every child
// reachable in one hop through the adjacency map. The result is deduped
// and sorted ascending so expansion is deterministic and idempotent on
// an already-expanded set (given leaf children carry no edges of their
// own, which is the hierarchy depth in production data).
func ExpandCategories(requested []int64, children map[int64][]int64) []int64 {
	if len(requested) == 0 {
		return requested
	}

	seen := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		seen[id] = struct{}{}
	}
	for _, id := range requested {
		for _, child := range children[id] {
			seen[child] = struct{}{}
		}
	}

	expanded := make([]int64, 0, len(seen))
	for id := range seen {
		expanded = append(expanded, id)
	}
	sort.Slice(expanded, func(i, j int) bool { return expanded[i] < expanded[j] })
	return expanded
}

// AdjacencyFromAssociations builds the one-hop expansion map from a flat
// edge list.
func AdjacencyFromAssociations(edges []CategoryAssociation) map[int64][]int64 {
	adjacency := make(map[int64][]int64, len(edges))
	for _, e := range edges {
		adjacency[e.ParentID] = append(adjacency[e.ParentID], e.ChildID)
	}
	return adjacency
}
