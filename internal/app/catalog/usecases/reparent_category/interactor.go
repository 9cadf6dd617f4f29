package reparent_category

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

// Request moves a category under a new parent. A nil NewParentID promotes it
// to a root.
type Request struct {
	CategoryID  string
	NewParentID *string
	Actor       string
}

// Interactor handles the reparent category use case.
type Interactor struct {
	repo      contracts.CategoryRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	cache     contracts.TreeCache
	clock     clock.Clock
}

// NewInteractor creates a new reparent category interactor.
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

// Execute moves the category and rewrites the stored paths of its whole
// subtree in the same commit.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load the category and its target parent
	category, err := i.repo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}
	expectedVersion := category.Version()
	oldPath := category.Path()
	oldLevel := category.Level()

	var parent *domain.Category
	if req.NewParentID != nil {
		parent, err = i.repo.GetByID(ctx, *req.NewParentID)
		if err != nil {
			return err
		}
	}

	// 2. Collect descendants before the move rewrites the path
	descendants, err := i.repo.ListByPathPrefix(ctx, oldPath+"/")
	if err != nil {
		return fmt.Errorf("load descendants: %w", err)
	}

	// 3. Move the node; the aggregate rejects self and descendant targets
	if err := category.SetParent(parent); err != nil {
		return err
	}

	// 4. Cascade the path rewrite to every descendant
	levelDelta := category.Level() - oldLevel
	plan := committer.NewPlan()
	now := i.clock.Now()

	for _, desc := range descendants {
		if err := desc.RebasePath(oldPath, category.Path(), levelDelta); err != nil {
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

	plan.Add(i.repo.UpdateMut(category))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateCategory,
		category.ID(),
		"reparented",
		req.Actor,
		category.Changes().Changes(),
		now,
	)))

	// 5. Apply with the moved node's version as the optimistic lock
	check := committer.VersionCheck{
		Table:    m_category.TableName,
		Key:      spanner.Key{category.ID()},
		Expected: expectedVersion,
	}
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit category move: %w", err)
	}

	i.cache.Invalidate(ctx)
	return nil
}
