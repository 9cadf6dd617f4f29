package update_variant_price

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_variant"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request overrides a variant's price.
type Request struct {
	VariantID string
	Price     decimal.Decimal
	Currency  string
	Actor     string
}

// Interactor handles the update variant price use case.
type Interactor struct {
	repo      contracts.VariantRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new update variant price interactor.
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

// Execute sets the variant's own price.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	price, err := domain.NewMoney(req.Price, req.Currency)
	if err != nil {
		return err
	}

	variant, err := i.repo.GetByID(ctx, req.VariantID)
	if err != nil {
		return err
	}
	expectedVersion := variant.Version()

	if err := variant.SetPrice(price); err != nil {
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
		"price_changed",
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
		return fmt.Errorf("commit variant price: %w", err)
	}
	return nil
}
