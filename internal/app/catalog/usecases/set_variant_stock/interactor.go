package set_variant_stock

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_variant"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request sets a variant's absolute stock quantity.
type Request struct {
	VariantID string
	Quantity  int64
	Actor     string
}

// Interactor handles the set variant stock use case.
type Interactor struct {
	repo      contracts.VariantRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new set variant stock interactor.
func NewInteractor(
	repo contracts.VariantRepository,
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

// Execute sets the stock level. Zero is valid; negative is rejected. Stock
// level never changes the variant's active flag.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	variant, err := i.repo.GetByID(ctx, req.VariantID)
	if err != nil {
		return err
	}
	expectedVersion := variant.Version()

	if err := variant.SetStockQuantity(req.Quantity); err != nil {
		return err
	}
	if !variant.Changes().HasChanges() {
		return nil
	}

	plan := committer.NewPlan()
	update, err := i.repo.UpdateMut(variant)
	if err != nil {
		return err
	}
	plan.Add(update)
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateVariant,
		variant.ID(),
		"stock_changed",
		req.Actor,
		variant.Changes().Changes(),
		i.clock.Now(),
	)))

	check := committer.VersionCheck{
		Table:    m_variant.TableName,
		Key:      spanner.Key{variant.ID()},
		Expected: expectedVersion,
	}
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit variant stock: %w", err)
	}
	return nil
}
