package create_category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request contains the data needed to create a category. An empty Slug is
// derived from Name.
type Request struct {
	Name        string
	Slug        string
	Description string
	ParentID    *string
	Actor       string
}

// Interactor handles the create category use case.
type Interactor struct {
	repo      contracts.CategoryRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	cache     contracts.TreeCache
	clock     clock.Clock
}

// NewInteractor creates a new create category interactor.
func NewInteractor(
	repo contracts.CategoryRepository,
	auditRepo contracts.AuditRepository,
	com *committer.Committer,
	cache contracts.TreeCache,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:      repo,
		auditRepo: auditRepo,
		committer: com,
		cache:     cache,
		clock:     clk,
	}
}

// Execute creates a new category under the requested parent.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Resolve the slug
	slug, err := resolveSlug(req)
	if err != nil {
		return "", err
	}

	// 2. Slug must be unique across all categories
	taken, err := i.repo.SlugExists(ctx, slug.String(), "")
	if err != nil {
		return "", fmt.Errorf("check category slug: %w", err)
	}
	if taken {
		return "", domain.ErrDuplicateSlug
	}

	// 3. Create the aggregate
	categoryID := uuid.New().String()
	now := i.clock.Now()

	category, err := domain.NewCategory(categoryID, req.Name, slug, now, i.clock)
	if err != nil {
		return "", err
	}

	// 4. Attach to the parent when one is requested
	if req.ParentID != nil {
		parent, err := i.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return "", err
		}
		if err := category.SetParent(parent); err != nil {
			return "", err
		}
	}
	if req.Description != "" {
		category.SetDescription(req.Description)
	}

	// 5. Build and apply the commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(category))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateCategory,
		category.ID(),
		"created",
		req.Actor,
		category.Changes().Changes(),
		now,
	)))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("commit category: %w", err)
	}

	i.cache.Invalidate(ctx)
	return category.ID(), nil
}

func resolveSlug(req *Request) (domain.Slug, error) {
	if req.Slug != "" {
		return domain.NewSlug(req.Slug)
	}
	return domain.SlugFromName(req.Name)
}
