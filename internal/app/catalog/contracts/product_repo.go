package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	// InsertMut creates a mutation for inserting a new product.
	InsertMut(product *domain.Product) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for a product's dirty fields, with the
	// version column incremented. Returns nil when nothing changed.
	UpdateMut(product *domain.Product) (*spanner.Mutation, error)

	// DeleteMut creates a mutation for deleting a product.
	DeleteMut(productID string) *spanner.Mutation

	// GetByID loads a product, or domain.ErrProductNotFound.
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// Exists checks whether a product id resolves.
	Exists(ctx context.Context, productID string) (bool, error)

	// SlugExists probes whether another product (any id except excludeID)
	// holds the slug.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)

	// SKUExists probes whether another product (any id except excludeID)
	// holds the sku.
	SKUExists(ctx context.Context, sku string, excludeID string) (bool, error)

	// CountInCategory counts products assigned to a category. Drives the
	// cannot-delete-with-products guard.
	CountInCategory(ctx context.Context, categoryID string) (int64, error)

	// CountUsingAttribute counts products with an assignment for the
	// attribute. Drives the attribute deletion guard.
	CountUsingAttribute(ctx context.Context, attributeID string) (int64, error)
}
