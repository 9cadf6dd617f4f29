package m_attribute

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations for the attributes table.
type Model struct{}

// NewModel creates a Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting an attribute.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		AllColumns,
		[]interface{}{
			data.AttributeID,
			data.Name,
			data.DisplayName,
			data.Type,
			data.Configuration,
			data.Filterable,
			data.Searchable,
			data.IsVariant,
			data.Version,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a mutation updating the given columns of one attribute.
func (m *Model) UpdateMut(attributeID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, AttributeID)
	values = append(values, attributeID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a mutation for deleting an attribute.
func (m *Model) DeleteMut(attributeID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{attributeID})
}
