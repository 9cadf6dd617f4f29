package update_product

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request is a full admin edit of a product's core fields.
type Request struct {
	ProductID   string
	Name        string
	Slug        string
	Description string
	SKU         *string
	BasePrice   decimal.Decimal
	Currency    string
	Actor       string
}

// Interactor handles the update product use case.
type Interactor struct {
	repo      contracts.ProductRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new update product interactor.
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

// Execute applies the edit. Slug and sku uniqueness are re-probed only when
// the edit actually changed them.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	slug, err := domain.NewSlug(req.Slug)
	if err != nil {
		return err
	}
	basePrice, err := domain.NewMoney(req.BasePrice, req.Currency)
	if err != nil {
		return err
	}

	// 1. Load and apply the edit
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	expectedVersion := product.Version()

	if err := product.Update(req.Name, slug, basePrice, req.Description, req.SKU); err != nil {
		return err
	}

	// 2. Conditional uniqueness probes
	if product.SlugChanged() {
		taken, err := i.repo.SlugExists(ctx, slug.String(), product.ID())
		if err != nil {
			return fmt.Errorf("check product slug: %w", err)
		}
		if taken {
			return domain.ErrDuplicateSlug
		}
	}
	if product.SKUChanged() && req.SKU != nil {
		taken, err := i.repo.SKUExists(ctx, *req.SKU, product.ID())
		if err != nil {
			return fmt.Errorf("check product sku: %w", err)
		}
		if taken {
			return domain.ErrDuplicateSKU
		}
	}

	if !product.Changes().HasChanges() {
		return nil
	}

	// 3. Build and apply the commit plan
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
		"updated",
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
		return fmt.Errorf("commit product update: %w", err)
	}
	return nil
}
