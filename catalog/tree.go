// Package catalog assembles navigation structures from the flat catalog
// DTOs the backend returns.
package catalog

import (
	"gofurn.io/storefront/models"
)

// BuildTree nests the flat category list by parent id for nav rendering.
// A category whose parent is missing from the list is kept as a root
// rather than silently dropped.
func BuildTree(categories []*models.Category) []*models.CategoryTree {
	nodes := make(map[uint64]*models.CategoryTree, len(categories))
	var roots []*models.CategoryTree

	for _, cat := range categories {
		nodes[cat.ID] = &models.CategoryTree{Category: cat}
	}

	for _, cat := range categories {
		node := nodes[cat.ID]
		if cat.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, exists := nodes[*cat.ParentID]
		if !exists {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}
