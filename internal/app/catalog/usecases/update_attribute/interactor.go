package update_attribute

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_attribute"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request updates an attribute's mutable fields. Nil pointers leave a field
// unchanged. A nil Configuration keeps the stored configuration; an empty
// map clears it back to the type's defaults.
type Request struct {
	AttributeID   string
	DisplayName   *string
	Filterable    *bool
	Searchable    *bool
	IsVariant     *bool
	Configuration map[string]interface{}
	Actor         string
}

// Interactor handles the update attribute use case.
type Interactor struct {
	repo      contracts.AttributeRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new update attribute interactor.
func NewInteractor(
	repo contracts.AttributeRepository,
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

// Execute applies the requested field updates. The attribute's type is
// immutable; configurations are re-validated against it.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	attribute, err := i.repo.GetByID(ctx, req.AttributeID)
	if err != nil {
		return err
	}
	expectedVersion := attribute.Version()

	if req.DisplayName != nil {
		if err := attribute.SetDisplayName(*req.DisplayName); err != nil {
			return err
		}
	}
	if req.Filterable != nil {
		attribute.SetFilterable(*req.Filterable)
	}
	if req.Searchable != nil {
		attribute.SetSearchable(*req.Searchable)
	}
	if req.IsVariant != nil {
		attribute.SetIsVariant(*req.IsVariant)
	}
	if req.Configuration != nil {
		if err := attribute.ReplaceConfiguration(req.Configuration); err != nil {
			return err
		}
	}

	if !attribute.Changes().HasChanges() {
		return nil
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.UpdateMut(attribute))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateAttribute,
		attribute.ID(),
		"updated",
		req.Actor,
		attribute.Changes().Changes(),
		i.clock.Now(),
	)))

	check := committer.VersionCheck{
		Table:    m_attribute.TableName,
		Key:      spanner.Key{attribute.ID()},
		Expected: expectedVersion,
	}
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit attribute update: %w", err)
	}
	return nil
}
