package get_product

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID string
}

// Query handles the get product query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the product detail with its variants.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDetail, error) {
	return q.readModel.GetProduct(ctx, req.ProductID)
}
