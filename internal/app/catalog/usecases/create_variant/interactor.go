package create_variant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request contains the data needed to create a variant. A nil Price
// snapshots the product's base price at creation time.
type Request struct {
	ProductID     string
	SKU           string
	Price         *decimal.Decimal
	Currency      string
	StockQuantity int64
	Actor         string
}

// Interactor handles the create variant use case.
type Interactor struct {
	repo        contracts.VariantRepository
	productRepo contracts.ProductRepository
	auditRepo   contracts.AuditRepository
	committer   *committer.Committer
	clock       clock.Clock
}

// NewInteractor creates a new create variant interactor.
func NewInteractor(
	repo contracts.VariantRepository,
	productRepo contracts.ProductRepository,
	auditRepo contracts.AuditRepository,
	com *committer.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:        repo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		committer:   com,
		clock:       clk,
	}
}

// Execute creates a new variant under the product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. The parent product must exist
	product, err := i.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return "", err
	}

	// 2. Variant SKUs are globally unique
	taken, err := i.repo.SKUExists(ctx, req.SKU, "")
	if err != nil {
		return "", fmt.Errorf("check variant sku: %w", err)
	}
	if taken {
		return "", domain.ErrDuplicateSKU
	}

	// 3. Resolve the price: explicit, or a snapshot of the base price
	price := product.BasePrice()
	if req.Price != nil {
		price, err = domain.NewMoney(*req.Price, req.Currency)
		if err != nil {
			return "", err
		}
	}

	// 4. Create the aggregate
	variantID := uuid.New().String()
	now := i.clock.Now()

	variant, err := domain.NewProductVariant(variantID, product.ID(), req.SKU, price, req.StockQuantity, now, i.clock)
	if err != nil {
		return "", err
	}

	// 5. Build and apply the commit plan
	plan := committer.NewPlan()
	insert, err := i.repo.InsertMut(variant)
	if err != nil {
		return "", err
	}
	plan.Add(insert)
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateVariant,
		variant.ID(),
		"created",
		req.Actor,
		variant.Changes().Changes(),
		now,
	)))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("commit variant: %w", err)
	}

	return variant.ID(), nil
}
