package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shopwice/internal/models"
)

// buildTree creates:
//
//	electronics
//	├── phones
//	│   └── smartphones
//	└── laptops
//	clothing (inactive child: archive)
func buildTree() (map[string]models.Category, *categoryIndex) {
	mk := func(name string, parent *models.Category, active bool) models.Category {
		c := models.Category{Name: name, Slug: name, IsActive: active}
		c.ID = uuid.New()
		if parent != nil {
			id := parent.ID
			c.ParentID = &id
		}
		return c
	}

	electronics := mk("electronics", nil, true)
	phones := mk("phones", &electronics, true)
	smartphones := mk("smartphones", &phones, true)
	laptops := mk("laptops", &electronics, true)
	clothing := mk("clothing", nil, true)
	archive := mk("archive", &clothing, false)

	all := []models.Category{electronics, phones, smartphones, laptops, clothing, archive}
	byName := map[string]models.Category{}
	for _, c := range all {
		byName[c.Name] = c
	}
	return byName, newCategoryIndex(all)
}

func TestBreadcrumbsRootToNode(t *testing.T) {
	cats, idx := buildTree()

	crumbs := idx.Breadcrumbs(cats["smartphones"].ID)
	require.Len(t, crumbs, 3)
	assert.Equal(t, "electronics", crumbs[0].Name)
	assert.Equal(t, "phones", crumbs[1].Name)
	assert.Equal(t, "smartphones", crumbs[2].Name)

	crumbs = idx.Breadcrumbs(cats["electronics"].ID)
	require.Len(t, crumbs, 1)
	assert.Equal(t, "electronics", crumbs[0].Name)
}

func TestDescendantIDs(t *testing.T) {
	cats, idx := buildTree()

	ids := idx.DescendantIDs(cats["electronics"].ID)
	assert.ElementsMatch(t, []uuid.UUID{
		cats["phones"].ID, cats["smartphones"].ID, cats["laptops"].ID,
	}, ids)

	assert.Empty(t, idx.DescendantIDs(cats["smartphones"].ID))

	// Inactive children are not collected.
	assert.Empty(t, idx.DescendantIDs(cats["clothing"].ID))
}

func TestWouldCreateCycle(t *testing.T) {
	cats, idx := buildTree()

	// Self-parent is a cycle.
	assert.True(t, idx.WouldCreateCycle(cats["phones"].ID, cats["phones"].ID))

	// Parent set to own descendant is a cycle.
	assert.True(t, idx.WouldCreateCycle(cats["electronics"].ID, cats["smartphones"].ID))
	assert.True(t, idx.WouldCreateCycle(cats["phones"].ID, cats["smartphones"].ID))

	// Unrelated category is fine.
	assert.False(t, idx.WouldCreateCycle(cats["phones"].ID, cats["clothing"].ID))

	// Moving a leaf under a sibling branch is fine.
	assert.False(t, idx.WouldCreateCycle(cats["smartphones"].ID, cats["laptops"].ID))
}

func TestChildrenCountSkipsInactive(t *testing.T) {
	cats, idx := buildTree()

	assert.Equal(t, 2, idx.ChildrenCount(cats["electronics"].ID))
	assert.Equal(t, 0, idx.ChildrenCount(cats["clothing"].ID))
}
