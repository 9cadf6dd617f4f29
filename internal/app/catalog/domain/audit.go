package domain

import "time"

// AggregateType tags audit entries with the kind of aggregate they describe.
type AggregateType string

const (
	AggregateCategory  AggregateType = "category"
	AggregateAttribute AggregateType = "attribute"
	AggregateProduct   AggregateType = "product"
	AggregateVariant   AggregateType = "product_variant"
	// AggregateAuditEntry exists so the audit system can refuse to audit
	// itself.
	AggregateAuditEntry AggregateType = "audit_entry"
)

// AuditEntry is a before/after snapshot of one aggregate commit. Entries are
// write-once; they carry no version and are never diffed themselves.
type AuditEntry struct {
	ID            string
	AggregateType AggregateType
	AggregateID   string
	Action        string
	Changes       map[string]FieldChange
	Actor         string
	CreatedAt     time.Time
}

// NewAuditEntry builds the audit snapshot for an aggregate commit. It
// returns nil for the audit-entry aggregate itself: persisting an audit
// record must not generate an audit record about that persist, or the trail
// recurses forever. The skip is an explicit type check so the exclusion is
// visible at the call site reviewing "what gets audited".
func NewAuditEntry(id string, aggregateType AggregateType, aggregateID, action, actor string, changes map[string]FieldChange, now time.Time) *AuditEntry {
	if aggregateType == AggregateAuditEntry {
		return nil
	}
	if len(changes) == 0 {
		return nil
	}
	return &AuditEntry{
		ID:            id,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Action:        action,
		Changes:       changes,
		Actor:         actor,
		CreatedAt:     now,
	}
}
