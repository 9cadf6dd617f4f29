package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ProductID   = "product_id"
	Name        = "name"
	Slug        = "slug"
	SKU         = "sku"
	BasePrice   = "base_price"
	Currency    = "currency"
	Description = "description"
	IsActive    = "is_active"
	Categories  = "categories"
	Attributes  = "attributes"
	Version     = "version"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// AllColumns lists every column in read order.
var AllColumns = []string{
	ProductID,
	Name,
	Slug,
	SKU,
	BasePrice,
	Currency,
	Description,
	IsActive,
	Categories,
	Attributes,
	Version,
	CreatedAt,
	UpdatedAt,
}
