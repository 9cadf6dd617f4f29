package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// VariantRepository is the persistence port for product variants.
type VariantRepository interface {
	// InsertMut creates a mutation for inserting a new variant.
	InsertMut(variant *domain.ProductVariant) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for a variant's dirty fields, with the
	// version column incremented. Returns nil when nothing changed.
	UpdateMut(variant *domain.ProductVariant) (*spanner.Mutation, error)

	// DeleteMut creates a mutation for deleting a variant.
	DeleteMut(variantID string) *spanner.Mutation

	// GetByID loads a variant, or domain.ErrVariantNotFound.
	GetByID(ctx context.Context, variantID string) (*domain.ProductVariant, error)

	// ListByProduct returns all variants of a product, for combination
	// uniqueness checks.
	ListByProduct(ctx context.Context, productID string) ([]*domain.ProductVariant, error)

	// SKUExists probes whether another variant (any id except excludeID)
	// holds the sku. Variant SKUs are unique across all products.
	SKUExists(ctx context.Context, sku string, excludeID string) (bool, error)
}
