package set_category_status

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

// Request toggles a category's visibility.
type Request struct {
	CategoryID string
	Active     bool
	Actor      string
}

// Interactor handles the set category status use case.
type Interactor struct {
	repo      contracts.CategoryRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	cache     contracts.TreeCache
	clock     clock.Clock
}

// NewInteractor creates a new set category status interactor.
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

// Execute sets the category's active flag. Setting the current state is a
// no-op success.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	category, err := i.repo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}
	expectedVersion := category.Version()

	category.SetActive(req.Active)
	if !category.Changes().HasChanges() {
		return nil
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.UpdateMut(category))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateCategory,
		category.ID(),
		"status_changed",
		req.Actor,
		category.Changes().Changes(),
		i.clock.Now(),
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
		return fmt.Errorf("commit category status: %w", err)
	}

	i.cache.Invalidate(ctx)
	return nil
}
