package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the database model for the products table. Categories holds the
// assigned category ids as a JSON array; Attributes holds the
// attributeID→{value} envelope map as JSON.
type Data struct {
	ProductID   string              `spanner:"product_id"`
	Name        string              `spanner:"name"`
	Slug        string              `spanner:"slug"`
	SKU         spanner.NullString  `spanner:"sku"`
	BasePrice   spanner.NullNumeric `spanner:"base_price"`
	Currency    string              `spanner:"currency"`
	Description string              `spanner:"description"`
	IsActive    bool                `spanner:"is_active"`
	Categories  spanner.NullJSON    `spanner:"categories"`
	Attributes  spanner.NullJSON    `spanner:"attributes"`
	Version     int64               `spanner:"version"`
	CreatedAt   time.Time           `spanner:"created_at"`
	UpdatedAt   time.Time           `spanner:"updated_at"`
}
