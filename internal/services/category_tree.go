package services

import (
	"github.com/google/uuid"

	"github.com/example/shopwice/internal/models"
)

// categoryIndex is an in-memory view of the category tree, built from
// one query per operation so breadcrumb and descendant walks never issue
// per-node round-trips. Traversals are iterative and bounded by the node
// count, so a malformed parent chain in storage cannot loop forever.
type categoryIndex struct {
	byID     map[uuid.UUID]*models.Category
	children map[uuid.UUID][]*models.Category
}

func newCategoryIndex(categories []models.Category) *categoryIndex {
	idx := &categoryIndex{
		byID:     make(map[uuid.UUID]*models.Category, len(categories)),
		children: make(map[uuid.UUID][]*models.Category),
	}
	for i := range categories {
		c := &categories[i]
		idx.byID[c.ID] = c
	}
	for _, c := range idx.byID {
		if c.ParentID != nil {
			idx.children[*c.ParentID] = append(idx.children[*c.ParentID], c)
		}
	}
	return idx
}

// Breadcrumbs walks the parent chain from id up to the root and returns
// the ordered root-to-node path.
func (idx *categoryIndex) Breadcrumbs(id uuid.UUID) []models.Breadcrumb {
	var path []models.Breadcrumb
	current := idx.byID[id]
	for steps := 0; current != nil && steps <= len(idx.byID); steps++ {
		path = append(path, models.Breadcrumb{ID: current.ID, Name: current.Name, Slug: current.Slug})
		if current.ParentID == nil {
			break
		}
		current = idx.byID[*current.ParentID]
	}
	// reverse into root-first order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// DescendantIDs collects every category reachable through child links
// from id, breadth-first. Only active nodes are considered; the index is
// normally built from active rows anyway.
func (idx *categoryIndex) DescendantIDs(id uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	queue := []uuid.UUID{id}
	seen := map[uuid.UUID]bool{id: true}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, child := range idx.children[next] {
			if seen[child.ID] || !child.IsActive {
				continue
			}
			seen[child.ID] = true
			out = append(out, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return out
}

// ChildrenCount returns the number of direct active children of id.
func (idx *categoryIndex) ChildrenCount(id uuid.UUID) int {
	count := 0
	for _, child := range idx.children[id] {
		if child.IsActive {
			count++
		}
	}
	return count
}

// WouldCreateCycle reports whether assigning candidateParent as the
// parent of category would close a loop: the candidate is the category
// itself or one of its descendants. The check walks the candidate's
// ancestor chain looking for the category, O(depth).
func (idx *categoryIndex) WouldCreateCycle(category, candidateParent uuid.UUID) bool {
	if category == candidateParent {
		return true
	}
	current := idx.byID[candidateParent]
	for steps := 0; current != nil && steps <= len(idx.byID); steps++ {
		if current.ParentID == nil {
			return false
		}
		if *current.ParentID == category {
			return true
		}
		current = idx.byID[*current.ParentID]
	}
	return false
}
