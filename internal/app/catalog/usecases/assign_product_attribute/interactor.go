package assign_product_attribute

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

// Request sets or clears an attribute value on a product. A nil Value
// removes the assignment.
type Request struct {
	ProductID   string
	AttributeID string
	Value       interface{}
	Actor       string
}

// Interactor handles the assign product attribute use case.
type Interactor struct {
	repo     contracts.ProductRepository
	attrRepo contracts.AttributeRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new assign product attribute interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	attrRepo contracts.AttributeRepository,
	auditRepo contracts.AuditRepository,
	com *committer.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:      repo,
		attrRepo:  attrRepo,
		auditRepo: auditRepo,
		committer: com,
		clock:     clk,
	}
}

// Execute validates the value against the attribute's type configuration and
// stores it in the product's assignment envelope. A dangling attribute id is
// an error, unlike dangling category ids, which assignment silently skips:
// attribute values are typed and cannot be validated against nothing.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	expectedVersion := product.Version()

	attribute, err := i.attrRepo.GetByID(ctx, req.AttributeID)
	if err != nil {
		return err
	}

	if req.Value == nil {
		product.RemoveAttribute(attribute.ID())
	} else {
		if err := attribute.ValidateValue(req.Value); err != nil {
			return err
		}
		product.SetAttribute(attribute.ID(), req.Value)
	}

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
		"attribute_assigned",
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
		return fmt.Errorf("commit attribute assignment: %w", err)
	}
	return nil
}
