package set_product_status

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

// Request toggles a product's visibility.
type Request struct {
	ProductID string
	Active    bool
	Actor     string
}

// Interactor handles the set product status use case.
type Interactor struct {
	repo      contracts.ProductRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new set product status interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	auditRepo contracts.AuditRepository,
	com *committer.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:      repo,
		auditRepo: auditRepo,
		committer: com,
		clock:     clk,
	}
}

// Execute sets the product's active flag. Setting the current state is a
// no-op success.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	expectedVersion := product.Version()

	product.SetActive(req.Active)
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
		"status_changed",
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
		return fmt.Errorf("commit product status: %w", err)
	}
	return nil
}
