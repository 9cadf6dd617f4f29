package rename_category

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request renames a category. Slug is required: renames never silently keep
// a slug that no longer matches the name.
type Request struct {
	CategoryID  string
	Name        string
	Slug        string
	Description *string
	Actor       string
}

// Interactor handles the rename category use case.
type Interactor struct {
	repo      contracts.CategoryRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	cache     contracts.TreeCache
	clock     clock.Clock
}

// NewInteractor creates a new rename category interactor.
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

// Execute renames the category and, when the slug changed, rebases the
// stored paths of its subtree in the same commit.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	slug, err := domain.NewSlug(req.Slug)
	if err != nil {
		return err
	}

	// 1. Load the category
	category, err := i.repo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}
	expectedVersion := category.Version()
	oldPath := category.Path()

	// 2. Probe slug uniqueness, excluding the category itself
	if !category.Slug().Equals(slug) {
		taken, err := i.repo.SlugExists(ctx, slug.String(), category.ID())
		if err != nil {
			return fmt.Errorf("check category slug: %w", err)
		}
		if taken {
			return domain.ErrDuplicateSlug
		}
	}

	// 3. Collect descendants before the rename rewrites the path
	descendants, err := i.repo.ListByPathPrefix(ctx, oldPath+"/")
	if err != nil {
		return fmt.Errorf("load descendants: %w", err)
	}

	// 4. Apply the rename
	if err := category.Rename(req.Name, slug); err != nil {
		return err
	}
	if req.Description != nil {
		category.SetDescription(*req.Description)
	}

	plan := committer.NewPlan()
	now := i.clock.Now()

	// 5. Cascade only when the path actually moved
	if category.Path() != oldPath {
		for _, desc := range descendants {
			if err := desc.RebasePath(oldPath, category.Path(), 0); err != nil {
				return err
			}
			plan.Add(i.repo.UpdateMut(desc))
			plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
				uuid.New().String(),
				domain.AggregateCategory,
				desc.ID(),
				"path_rebased",
				req.Actor,
				desc.Changes().Changes(),
				now,
			)))
		}
	}

	plan.Add(i.repo.UpdateMut(category))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateCategory,
		category.ID(),
		"renamed",
		req.Actor,
		category.Changes().Changes(),
		now,
	)))

	check := committer.VersionCheck{
		Table:    m_category.TableName,
		Key:      spanner.Key{category.ID()},
		Expected: expectedVersion,
	}
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit category rename: %w", err)
	}

	i.cache.Invalidate(ctx)
	return nil
}
