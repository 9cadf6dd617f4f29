package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// CategoryRepo implements CategoryRepository for Spanner.
type CategoryRepo struct {
	client *spanner.Client
	model  *m_category.Model
	clock  clock.Clock
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(client *spanner.Client, clk clock.Clock) contracts.CategoryRepository {
	return &CategoryRepo{
		client: client,
		model:  m_category.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new category.
func (r *CategoryRepo) InsertMut(category *domain.Category) *spanner.Mutation {
	return r.model.InsertMut(r.domainToData(category))
}

// UpdateMut creates a mutation for a category's dirty fields.
func (r *CategoryRepo) UpdateMut(category *domain.Category) *spanner.Mutation {
	changes := category.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_category.Name] = category.Name()
	}
	if changes.Dirty(domain.FieldSlug) {
		updates[m_category.Slug] = category.Slug().String()
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_category.Description] = category.Description()
	}
	if changes.Dirty(domain.FieldParentID) {
		updates[m_category.ParentID] = nullString(category.ParentID())
	}
	if changes.Dirty(domain.FieldLevel) {
		updates[m_category.Level] = category.Level()
	}
	if changes.Dirty(domain.FieldPath) {
		updates[m_category.Path] = category.Path()
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_category.IsActive] = category.IsActive()
	}

	if len(updates) == 0 {
		return nil
	}

	updates[m_category.UpdatedAt] = r.clock.Now()
	updates[m_category.Version] = category.Version() + 1

	return r.model.UpdateMut(category.ID(), updates)
}

// DeleteMut creates a mutation for deleting a category.
func (r *CategoryRepo) DeleteMut(categoryID string) *spanner.Mutation {
	return r.model.DeleteMut(categoryID)
}

// GetByID loads a category, reconstructing the domain aggregate.
func (r *CategoryRepo) GetByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	row, err := r.client.Single().ReadRow(ctx, m_category.TableName, spanner.Key{categoryID}, m_category.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("read category: %w", err)
	}

	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("parse category: %w", err)
	}

	return r.dataToDomain(&data)
}

// SlugExists probes whether another category holds the slug.
func (r *CategoryRepo) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT category_id FROM categories WHERE slug = @slug AND category_id != @exclude LIMIT 1",
		Params: map[string]interface{}{
			"slug":    slug,
			"exclude": excludeID,
		},
	}
	return r.exists(ctx, stmt, "probe category slug")
}

// HasChildren reports whether any category has this one as parent.
func (r *CategoryRepo) HasChildren(ctx context.Context, categoryID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT category_id FROM categories WHERE parent_id = @parent LIMIT 1",
		Params: map[string]interface{}{
			"parent": categoryID,
		},
	}
	return r.exists(ctx, stmt, "probe category children")
}

// ListByPathPrefix returns all categories under a path prefix.
func (r *CategoryRepo) ListByPathPrefix(ctx context.Context, prefix string) ([]*domain.Category, error) {
	stmt := spanner.Statement{
		SQL: "SELECT " + columnList(m_category.AllColumns) + " FROM categories WHERE STARTS_WITH(path, @prefix) ORDER BY path",
		Params: map[string]interface{}{
			"prefix": prefix,
		},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*domain.Category
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate categories: %w", err)
		}

		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("parse category: %w", err)
		}
		category, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		out = append(out, category)
	}
	return out, nil
}

func (r *CategoryRepo) exists(ctx context.Context, stmt spanner.Statement, what string) (bool, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return true, nil
}

func (r *CategoryRepo) domainToData(category *domain.Category) *m_category.Data {
	return &m_category.Data{
		CategoryID:  category.ID(),
		Name:        category.Name(),
		Slug:        category.Slug().String(),
		Description: category.Description(),
		ParentID:    nullString(category.ParentID()),
		Level:       category.Level(),
		Path:        category.Path(),
		IsActive:    category.IsActive(),
		Version:     category.Version(),
		CreatedAt:   category.CreatedAt(),
		UpdatedAt:   category.UpdatedAt(),
	}
}

func (r *CategoryRepo) dataToDomain(data *m_category.Data) (*domain.Category, error) {
	slug, err := domain.NewSlug(data.Slug)
	if err != nil {
		return nil, fmt.Errorf("stored slug invalid: %w", err)
	}

	return domain.ReconstructCategory(
		data.CategoryID,
		data.Name,
		slug,
		data.Description,
		stringPtr(data.ParentID),
		data.Level,
		data.Path,
		data.IsActive,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}
