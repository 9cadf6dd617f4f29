package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// AuditRepository persists before/after snapshots for aggregate commits.
// Snapshot mutations ride in the same commit plan as the writes they record.
type AuditRepository interface {
	// InsertMut creates a mutation for an audit entry. A nil entry (the
	// audit type's own self-exclusion, or an empty diff) yields a nil
	// mutation, which the commit plan ignores.
	InsertMut(entry *domain.AuditEntry) *spanner.Mutation
}
