package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// CategoryRepository is the persistence port for the category tree.
// Repositories return mutations, they don't apply them; usecases collect
// mutations into a commit plan. Uniqueness probes live here because true
// uniqueness needs a cross-aggregate view only storage has.
type CategoryRepository interface {
	// InsertMut creates a mutation for inserting a new category.
	InsertMut(category *domain.Category) *spanner.Mutation

	// UpdateMut creates a mutation for a category's dirty fields, with the
	// version column incremented. Returns nil when nothing changed.
	UpdateMut(category *domain.Category) *spanner.Mutation

	// DeleteMut creates a mutation for deleting a category.
	DeleteMut(categoryID string) *spanner.Mutation

	// GetByID loads a category, or domain.ErrCategoryNotFound.
	GetByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// SlugExists probes whether another category (any id except excludeID)
	// holds the slug.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)

	// HasChildren reports whether any category has this one as parent.
	HasChildren(ctx context.Context, categoryID string) (bool, error)

	// ListByPathPrefix returns all categories whose path starts with the
	// prefix, for descendant cascade rewrites on reparent/rename.
	ListByPathPrefix(ctx context.Context, prefix string) ([]*domain.Category, error)
}
