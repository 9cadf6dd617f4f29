package m_audit

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations for the audit_entries table.
type Model struct{}

// NewModel creates a Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting an audit entry.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		AllColumns,
		[]interface{}{
			data.EntryID,
			data.AggregateType,
			data.AggregateID,
			data.Action,
			data.Changes,
			data.Actor,
			data.CreatedAt,
		},
	)
}
