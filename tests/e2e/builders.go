package e2e

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/assign_product_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_variant"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_product"
)

// updateRequest maps a create request onto an update of an existing product.
func updateRequest(productID string, req *create_product.Request) *update_product.Request {
	return &update_product.Request{
		ProductID:   productID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		SKU:         req.SKU,
		BasePrice:   req.BasePrice,
		Currency:    req.Currency,
		Actor:       req.Actor,
	}
}

// assignCategories builds an assign_product_category.Request replacing the
// product's category set with the given ids.
func assignCategories(productID string, categoryIDs ...string) *assign_product_category.Request {
	return &assign_product_category.Request{
		ProductID:   productID,
		CategoryIDs: categoryIDs,
		Actor:       "e2e-test",
	}
}

// CategoryBuilder helps create categories for tests with a fluent interface
type CategoryBuilder struct {
	name        string
	slug        string
	description string
	parentID    *string
}

// NewCategoryBuilder creates a new builder with default values
func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{
		name: "Electronics",
		slug: "electronics",
	}
}

// Named sets both name and slug
func (b *CategoryBuilder) Named(name, slug string) *CategoryBuilder {
	b.name = name
	b.slug = slug
	return b
}

// WithDescription sets the category description
func (b *CategoryBuilder) WithDescription(description string) *CategoryBuilder {
	b.description = description
	return b
}

// Under sets the parent category
func (b *CategoryBuilder) Under(parentID string) *CategoryBuilder {
	b.parentID = &parentID
	return b
}

// Build creates the create_category.Request
func (b *CategoryBuilder) Build() *create_category.Request {
	return &create_category.Request{
		Name:        b.name,
		Slug:        b.slug,
		Description: b.description,
		ParentID:    b.parentID,
		Actor:       "e2e-test",
	}
}

// AttributeBuilder helps create attributes for tests with a fluent interface
type AttributeBuilder struct {
	name      string
	attrType  string
	config    map[string]interface{}
	isVariant bool
}

// NewAttributeBuilder creates a new builder with default values: a select
// attribute named "size" with options S, M and L.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{
		name:     "size",
		attrType: "select",
		config:   map[string]interface{}{"values": []interface{}{"S", "M", "L"}},
	}
}

// Named sets the attribute name
func (b *AttributeBuilder) Named(name string) *AttributeBuilder {
	b.name = name
	return b
}

// OfType sets the attribute type and its configuration
func (b *AttributeBuilder) OfType(attrType string, config map[string]interface{}) *AttributeBuilder {
	b.attrType = attrType
	b.config = config
	return b
}

// ForVariants marks the attribute as usable on variants
func (b *AttributeBuilder) ForVariants() *AttributeBuilder {
	b.isVariant = true
	return b
}

// Build creates the create_attribute.Request
func (b *AttributeBuilder) Build() *create_attribute.Request {
	return &create_attribute.Request{
		Name:          b.name,
		DisplayName:   b.name,
		Type:          b.attrType,
		Configuration: b.config,
		Filterable:    true,
		IsVariant:     b.isVariant,
		Actor:         "e2e-test",
	}
}

// ProductBuilder helps create products for tests with a fluent interface
type ProductBuilder struct {
	name        string
	slug        string
	description string
	sku         *string
	price       string
	currency    string
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:        "Basic Tee",
		slug:        "basic-tee",
		description: "Default Description",
		price:       "19.99",
		currency:    "USD",
	}
}

// Named sets both name and slug
func (b *ProductBuilder) Named(name, slug string) *ProductBuilder {
	b.name = name
	b.slug = slug
	return b
}

// WithSKU sets the product SKU
func (b *ProductBuilder) WithSKU(sku string) *ProductBuilder {
	b.sku = &sku
	return b
}

// WithPrice sets the base price
func (b *ProductBuilder) WithPrice(price, currency string) *ProductBuilder {
	b.price = price
	b.currency = currency
	return b
}

// Build creates the create_product.Request
func (b *ProductBuilder) Build() *create_product.Request {
	return &create_product.Request{
		Name:        b.name,
		Slug:        b.slug,
		Description: b.description,
		SKU:         b.sku,
		BasePrice:   decimal.RequireFromString(b.price),
		Currency:    b.currency,
		Actor:       "e2e-test",
	}
}

// VariantBuilder helps create variants for tests with a fluent interface
type VariantBuilder struct {
	productID string
	sku       string
	price     *decimal.Decimal
	currency  string
	stock     int64
}

// NewVariantBuilder creates a new builder for the given product. The variant
// carries no price of its own, so it inherits the product's base price.
func NewVariantBuilder(productID string) *VariantBuilder {
	return &VariantBuilder{
		productID: productID,
		sku:       "TEE-001-M",
		stock:     10,
	}
}

// WithSKU sets the variant SKU
func (b *VariantBuilder) WithSKU(sku string) *VariantBuilder {
	b.sku = sku
	return b
}

// WithPrice gives the variant its own price
func (b *VariantBuilder) WithPrice(price, currency string) *VariantBuilder {
	d := decimal.RequireFromString(price)
	b.price = &d
	b.currency = currency
	return b
}

// WithStock sets the initial stock quantity
func (b *VariantBuilder) WithStock(stock int64) *VariantBuilder {
	b.stock = stock
	return b
}

// Build creates the create_variant.Request
func (b *VariantBuilder) Build() *create_variant.Request {
	return &create_variant.Request{
		ProductID:     b.productID,
		SKU:           b.sku,
		Price:         b.price,
		Currency:      b.currency,
		StockQuantity: b.stock,
		Actor:         "e2e-test",
	}
}
