package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofurn.io/storefront/models"
)

func cat(id uint64, name string, parent *uint64) *models.Category {
	return &models.Category{ID: id, Name: name, ParentID: parent}
}

func TestBuildTreeNestsChildren(t *testing.T) {
	living := uint64(1)
	categories := []*models.Category{
		cat(1, "Living room", nil),
		cat(2, "Sofas", &living),
		cat(3, "Coffee tables", &living),
		cat(4, "Bedroom", nil),
	}

	tree := BuildTree(categories)

	require.Len(t, tree, 2)
	assert.Equal(t, "Living room", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Sofas", tree[0].Children[0].Name)
	assert.Empty(t, tree[1].Children)
}

func TestBuildTreeKeepsOrphansAsRoots(t *testing.T) {
	missing := uint64(99)
	categories := []*models.Category{
		cat(1, "Living room", nil),
		cat(2, "Orphan", &missing),
	}

	tree := BuildTree(categories)

	require.Len(t, tree, 2)
	assert.Equal(t, "Orphan", tree[1].Name)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}
