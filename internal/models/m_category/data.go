package m_category

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the database model for the categories table.
type Data struct {
	CategoryID  string             `spanner:"category_id"`
	Name        string             `spanner:"name"`
	Slug        string             `spanner:"slug"`
	Description string             `spanner:"description"`
	ParentID    spanner.NullString `spanner:"parent_id"`
	Level       int64              `spanner:"level"`
	Path        string             `spanner:"path"`
	IsActive    bool               `spanner:"is_active"`
	Version     int64              `spanner:"version"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
}
