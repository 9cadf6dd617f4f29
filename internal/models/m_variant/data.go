package m_variant

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the database model for the product_variants table. Price and
// Currency are NULL when the variant mirrors the product's base price on the
// read path.
type Data struct {
	VariantID       string              `spanner:"variant_id"`
	ProductID       string              `spanner:"product_id"`
	SKU             string              `spanner:"sku"`
	Price           spanner.NullNumeric `spanner:"price"`
	Currency        spanner.NullString  `spanner:"currency"`
	StockQuantity   int64               `spanner:"stock_quantity"`
	IsActive        bool                `spanner:"is_active"`
	AttributeValues spanner.NullJSON    `spanner:"attribute_values"`
	Metadata        spanner.NullJSON    `spanner:"metadata"`
	Version         int64               `spanner:"version"`
	CreatedAt       time.Time           `spanner:"created_at"`
	UpdatedAt       time.Time           `spanner:"updated_at"`
}
