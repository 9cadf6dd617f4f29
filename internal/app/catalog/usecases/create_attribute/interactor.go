package create_attribute

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// Request contains the data needed to create an attribute. Configuration is
// the raw type-shaped settings map; it is decoded and validated against Type.
type Request struct {
	Name          string
	DisplayName   string
	Type          string
	Configuration map[string]interface{}
	Filterable    bool
	Searchable    bool
	IsVariant     bool
	Actor         string
}

// Interactor handles the create attribute use case.
type Interactor struct {
	repo      contracts.AttributeRepository
	auditRepo contracts.AuditRepository
	committer *committer.Committer
	clock     clock.Clock
}

// NewInteractor creates a new create attribute interactor.
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

// Execute creates a new attribute descriptor.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. System name must be unique
	taken, err := i.repo.NameExists(ctx, req.Name, "")
	if err != nil {
		return "", fmt.Errorf("check attribute name: %w", err)
	}
	if taken {
		return "", domain.ErrDuplicateName
	}

	// 2. Create the aggregate; the configuration is validated against the type
	attributeID := uuid.New().String()
	now := i.clock.Now()

	attribute, err := domain.NewAttribute(
		attributeID,
		req.Name,
		req.DisplayName,
		domain.AttributeType(req.Type),
		req.Configuration,
		now,
		i.clock,
	)
	if err != nil {
		return "", err
	}

	if req.Filterable {
		attribute.SetFilterable(true)
	}
	if req.Searchable {
		attribute.SetSearchable(true)
	}
	if req.IsVariant {
		attribute.SetIsVariant(true)
	}

	// 3. Build and apply the commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(attribute))
	plan.Add(i.auditRepo.InsertMut(domain.NewAuditEntry(
		uuid.New().String(),
		domain.AggregateAttribute,
		attribute.ID(),
		"created",
		req.Actor,
		attribute.Changes().Changes(),
		now,
	)))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("commit attribute: %w", err)
	}

	return attribute.ID(), nil
}
