package m_variant

// Field name constants for the product_variants table.
const (
	TableName = "product_variants"

	VariantID       = "variant_id"
	ProductID       = "product_id"
	SKU             = "sku"
	Price           = "price"
	Currency        = "currency"
	StockQuantity   = "stock_quantity"
	IsActive        = "is_active"
	AttributeValues = "attribute_values"
	Metadata        = "metadata"
	Version         = "version"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)

// AllColumns lists every column in read order.
var AllColumns = []string{
	VariantID,
	ProductID,
	SKU,
	Price,
	Currency,
	StockQuantity,
	IsActive,
	AttributeValues,
	Metadata,
	Version,
	CreatedAt,
	UpdatedAt,
}
