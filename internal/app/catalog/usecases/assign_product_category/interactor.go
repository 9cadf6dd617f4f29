package assign_product_category

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request replaces a product's category assignments with CategoryIDs.
type Request struct {
	ProductID   string
	CategoryIDs []string
	Actor       string
}

// Interactor handles the assign product category use case.
type Interactor struct {
	repo         contracts.ProductRepository
	categoryRepo contracts.CategoryRepository
	auditRepo    contracts.AuditRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new assign product category interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	categoryRepo contracts.CategoryRepository,
	auditRepo contracts.AuditRepository,
	com *committer.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:         repo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		committer:    com,
		clock:        clk,
	}
}

// Execute replaces the product's category set. Ids that resolve to no
// category are skipped rather than failed: a category deleted between the
// admin loading the selector and submitting is not worth rejecting the whole
// edit for.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	expectedVersion := product.Version()

	resolved := make(map[string]struct{}, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		if _, err := i.categoryRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				continue
			}
			return err
		}
		resolved[id] = struct{}{}
	}

	for _, id := range product.CategoryIDs() {
		if _, keep := resolved[id]; !keep {
			product.RemoveCategory(id)
		}
	}
	for id := range resolved {
		product.AddCategory(id)
	}

	if !product.Changes().HasChanges() {
		return nil
	}

	plan := committer.NewPlan()
	update, err := i.repo.UpdateMut(product)
	if err != nil {
		return err
	}
	plan.Add(update)
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateProduct,
		product.ID(),
		"categories_assigned",
		req.Actor,
		product.Changes().Changes(),
		i.clock.Now(),
	)))

	check := committer.VersionCheck{
		Table:    m_product.TableName,
		Key:      spanner.Key{product.ID()},
		Expected: expectedVersion,
	}
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit category assignment: %w", err)
	}
	return nil
}
