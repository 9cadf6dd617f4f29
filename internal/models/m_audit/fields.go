package m_audit

// Field name constants for the audit_entries table.
const (
	TableName = "audit_entries"

	EntryID       = "entry_id"
	AggregateType = "aggregate_type"
	AggregateID   = "aggregate_id"
	Action        = "action"
	Changes       = "changes"
	Actor         = "actor"
	CreatedAt     = "created_at"
)

// AllColumns lists every column in read order.
var AllColumns = []string{
	EntryID,
	AggregateType,
	AggregateID,
	Action,
	Changes,
	Actor,
	CreatedAt,
}
