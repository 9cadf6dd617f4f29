package delete_attribute

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request deletes an attribute descriptor.
type Request struct {
	AttributeID string
	Actor       string
}

// Interactor handles the delete attribute use case.
type Interactor struct {
	repo        contracts.AttributeRepository
	productRepo contracts.ProductRepository
	auditRepo   contracts.AuditRepository
	committer   *committer.Committer
	clock       clock.Clock
}

// NewInteractor creates a new delete attribute interactor.
func NewInteractor(
	repo contracts.AttributeRepository,
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

// Execute deletes the attribute. Attributes still assigned to products
// cannot be deleted.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	attribute, err := i.repo.GetByID(ctx, req.AttributeID)
	if err != nil {
		return err
	}

	inUse, err := i.productRepo.CountUsingAttribute(ctx, attribute.ID())
	if err != nil {
		return fmt.Errorf("count attribute usage: %w", err)
	}
	if inUse > 0 {
		return domain.ErrAttributeInUse
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(attribute.ID()))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateAttribute,
		attribute.ID(),
		"deleted",
		req.Actor,
		map[string]domain.FieldChange{
			"name": {Old: attribute.Name(), New: nil},
			"type": {Old: string(attribute.AttrType()), New: nil},
		},
		i.clock.Now(),
	)))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("commit attribute delete: %w", err)
	}
	return nil
}
