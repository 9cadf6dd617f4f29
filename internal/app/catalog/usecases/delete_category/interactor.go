package delete_category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request deletes a category.
type Request struct {
	CategoryID string
	Actor      string
}

// Interactor handles the delete category use case.
type Interactor struct {
	repo        contracts.CategoryRepository
	productRepo contracts.ProductRepository
	auditRepo   contracts.AuditRepository
	committer   *committer.Committer
	cache       contracts.TreeCache
	clock       clock.Clock
}

// NewInteractor creates a new delete category interactor.
func NewInteractor(
	repo contracts.CategoryRepository,
	productRepo contracts.ProductRepository,
	auditRepo contracts.AuditRepository,
	com *committer.Committer,
	cache contracts.TreeCache,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:        repo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		committer:   com,
		cache:       cache,
		clock:       clk,
	}
}

// Execute deletes the category. Categories with children or with assigned
// products cannot be deleted.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	category, err := i.repo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}

	hasChildren, err := i.repo.HasChildren(ctx, category.ID())
	if err != nil {
		return fmt.Errorf("check category children: %w", err)
	}
	if hasChildren {
		return domain.ErrCannotDeleteWithChildren
	}

	productCount, err := i.productRepo.CountInCategory(ctx, category.ID())
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if productCount > 0 {
		return domain.ErrCannotDeleteWithProducts
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(category.ID()))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateCategory,
		category.ID(),
		"deleted",
		req.Actor,
		map[string]domain.FieldChange{
			domain.FieldName: {Old: category.Name(), New: nil},
			domain.FieldPath: {Old: category.Path(), New: nil},
		},
		i.clock.Now(),
	)))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("commit category delete: %w", err)
	}

	i.cache.Invalidate(ctx)
	return nil
}
