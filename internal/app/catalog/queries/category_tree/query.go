package category_tree

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
)

// Query handles the category tree query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new category tree query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the nested category selector tree.
func (q *Query) Execute(ctx context.Context) ([]contracts.TreeNode, error) {
	return q.readModel.CategoryTree(ctx)
}
