package m_attribute

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the database model for the attributes table. Configuration is the
// type-shaped settings map serialized as JSON.
type Data struct {
	AttributeID   string           `spanner:"attribute_id"`
	Name          string           `spanner:"name"`
	DisplayName   string           `spanner:"display_name"`
	Type          string           `spanner:"type"`
	Configuration spanner.NullJSON `spanner:"configuration"`
	Filterable    bool             `spanner:"filterable"`
	Searchable    bool             `spanner:"searchable"`
	IsVariant     bool             `spanner:"is_variant"`
	Version       int64            `spanner:"version"`
	CreatedAt     time.Time        `spanner:"created_at"`
	UpdatedAt     time.Time        `spanner:"updated_at"`
}
