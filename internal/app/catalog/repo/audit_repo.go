package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_audit"
)

// AuditRepo implements AuditRepository for Spanner.
type AuditRepo struct {
	model *m_audit.Model
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo() contracts.AuditRepository {
	return &AuditRepo{model: m_audit.NewModel()}
}

// InsertMut creates a mutation for an audit entry. Nil entries (the audit
// aggregate's self-exclusion, or an empty diff) produce nil mutations.
func (r *AuditRepo) InsertMut(entry *domain.AuditEntry) *spanner.Mutation {
	if entry == nil {
		return nil
	}

	return r.model.InsertMut(&m_audit.Data{
		EntryID:       entry.ID,
		AggregateType: string(entry.AggregateType),
		AggregateID:   entry.AggregateID,
		Action:        entry.Action,
		Changes:       nullJSON(entry.Changes),
		Actor:         entry.Actor,
		CreatedAt:     entry.CreatedAt,
	})
}
