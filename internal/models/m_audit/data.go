package m_audit

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the database model for the audit_entries table. Changes holds the
// field→{old,new} diff as JSON. Rows are write-once; there is no version
// column and no update mutation.
type Data struct {
	EntryID       string           `spanner:"entry_id"`
	AggregateType string           `spanner:"aggregate_type"`
	AggregateID   string           `spanner:"aggregate_id"`
	Action        string           `spanner:"action"`
	Changes       spanner.NullJSON `spanner:"changes"`
	Actor         string           `spanner:"actor"`
	CreatedAt     time.Time        `spanner:"created_at"`
}
