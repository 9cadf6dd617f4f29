package list_products

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
)

// Query handles the product listing query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute serves one page of the product admin table.
func (q *Query) Execute(ctx context.Context, req *datatable.Request) (*datatable.Response, error) {
	return q.readModel.ListProducts(ctx, req)
}
