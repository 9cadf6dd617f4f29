package list_attributes

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
)

// Query handles the attribute listing query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list attributes query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute serves one page of the attribute admin table.
func (q *Query) Execute(ctx context.Context, req *datatable.Request) (*datatable.Response, error) {
	return q.readModel.ListAttributes(ctx, req)
}
