package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// AttributeRepository is the persistence port for attribute descriptors.
type AttributeRepository interface {
	// InsertMut creates a mutation for inserting a new attribute.
	InsertMut(attribute *domain.Attribute) *spanner.Mutation

	// UpdateMut creates a mutation for an attribute's dirty fields, with the
	// version column incremented. Returns nil when nothing changed.
	UpdateMut(attribute *domain.Attribute) *spanner.Mutation

	// DeleteMut creates a mutation for deleting an attribute.
	DeleteMut(attributeID string) *spanner.Mutation

	// GetByID loads an attribute, or domain.ErrAttributeNotFound.
	GetByID(ctx context.Context, attributeID string) (*domain.Attribute, error)

	// NameExists probes whether another attribute (any id except excludeID)
	// holds the system name.
	NameExists(ctx context.Context, name string, excludeID string) (bool, error)
}
