package create_product

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

// Request contains the data needed to create a product. An empty Slug is
// derived from Name. Inactive products start hidden from storefront reads.
type Request struct {
	Name        string
	Slug        string
	Description string
	SKU         *string
	BasePrice   decimal.Decimal
	Currency    string
	Inactive    bool
	Actor       string
}

// Interactor handles the create product use case.
type Interactor struct {
	repo      contracts.ProductRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new create product interactor.
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

// Execute creates a new product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Resolve slug and price
	slug, err := resolveSlug(req)
	if err != nil {
		return "", err
	}
	basePrice, err := domain.NewMoney(req.BasePrice, req.Currency)
	if err != nil {
		return "", err
	}

	// 2. Uniqueness probes: slug always, sku when provided
	taken, err := i.repo.SlugExists(ctx, slug.String(), "")
	if err != nil {
		return "", fmt.Errorf("check product slug: %w", err)
	}
	if taken {
		return "", domain.ErrDuplicateSlug
	}
	if req.SKU != nil {
		taken, err := i.repo.SKUExists(ctx, *req.SKU, "")
		if err != nil {
			return "", fmt.Errorf("check product sku: %w", err)
		}
		if taken {
			return "", domain.ErrDuplicateSKU
		}
	}

	// 3. Create the aggregate
	productID := uuid.New().String()
	now := i.clock.Now()

	var product *domain.Product
	if req.Inactive {
		product, err = domain.NewInactiveProduct(productID, req.Name, slug, basePrice, now, i.clock)
	} else {
		product, err = domain.NewProduct(productID, req.Name, slug, basePrice, now, i.clock)
	}
	if err != nil {
		return "", err
	}

	if req.Description != "" || req.SKU != nil {
		if err := product.Update(req.Name, slug, basePrice, req.Description, req.SKU); err != nil {
			return "", err
		}
	}

	// 4. Build and apply the commit plan
	plan := committer.NewPlan()
	insert, err := i.repo.InsertMut(product)
	if err != nil {
		return "", err
	}
	plan.Add(insert)
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateProduct,
		product.ID(),
		"created",
		req.Actor,
		product.Changes().Changes(),
		now,
	)))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("commit product: %w", err)
	}

	return product.ID(), nil
}

func resolveSlug(req *Request) (domain.Slug, error) {
	if req.Slug != "" {
		return domain.NewSlug(req.Slug)
	}
	return domain.SlugFromName(req.Name)
}
