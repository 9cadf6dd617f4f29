package add_variant_attribute

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

// Request sets a variant-defining attribute value on a variant.
type Request struct {
	VariantID   string
	AttributeID string
	Value       interface{}
	Actor       string
}

// Interactor handles the add variant attribute use case.
type Interactor struct {
	repo      contracts.VariantRepository
	attrRepo  contracts.AttributeRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new add variant attribute interactor.
func NewInteractor(
	repo contracts.VariantRepository,
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

// Execute sets the attribute value. Only attributes flagged isVariant may
// define variants, the value must pass the attribute's type validation, and
// the resulting attribute combination must stay unique within the product.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	variant, err := i.repo.GetByID(ctx, req.VariantID)
	if err != nil {
		return err
	}
	expectedVersion := variant.Version()

	attribute, err := i.attrRepo.GetByID(ctx, req.AttributeID)
	if err != nil {
		return err
	}
	if !attribute.IsVariant() {
		return domain.ErrNotVariantAttribute
	}
	if err := attribute.ValidateValue(req.Value); err != nil {
		return err
	}

	variant.SetAttributeValue(attribute.ID(), req.Value)

	// The new combination may not collide with any sibling
	siblings, err := i.repo.ListByProduct(ctx, variant.ProductID())
	if err != nil {
		return fmt.Errorf("load sibling variants: %w", err)
	}
	key := variant.CombinationKey()
	for _, sibling := range siblings {
		if sibling.ID() == variant.ID() {
			continue
		}
		if sibling.CombinationKey() == key {
			return domain.ErrDuplicateCombination
		}
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
		"attribute_added",
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
		return fmt.Errorf("commit variant attribute: %w", err)
	}
	return nil
}
