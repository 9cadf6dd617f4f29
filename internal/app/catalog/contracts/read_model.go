package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
)

// CategoryRow is the admin-listing DTO for a category.
type CategoryRow struct {
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	ParentID   *string   `json:"parentId,omitempty"`
	Level      int64     `json:"level"`
	Path       string    `json:"path"`
	IsActive   bool      `json:"isActive"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AttributeRow is the admin-listing DTO for an attribute.
type AttributeRow struct {
	AttributeID string    `json:"attributeId"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Type        string    `json:"type"`
	Filterable  bool      `json:"filterable"`
	Searchable  bool      `json:"searchable"`
	IsVariant   bool      `json:"isVariant"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductRow is the admin-listing DTO for a product.
type ProductRow struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SKU       *string   `json:"sku,omitempty"`
	BasePrice string    `json:"basePrice"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VariantDTO is the read-side view of a variant. Price is always populated:
// a variant stored with NULL price reports the product's current base price.
type VariantDTO struct {
	VariantID       string                 `json:"variantId"`
	SKU             string                 `json:"sku"`
	Price           string                 `json:"price"`
	Currency        string                 `json:"currency"`
	PriceInherited  bool                   `json:"priceInherited"`
	StockQuantity   int64                  `json:"stockQuantity"`
	IsActive        bool                   `json:"isActive"`
	AttributeValues map[string]interface{} `json:"attributeValues"`
}

// ProductDetail is the full read-side view of a product.
type ProductDetail struct {
	ProductID   string                 `json:"productId"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	SKU         *string                `json:"sku,omitempty"`
	BasePrice   string                 `json:"basePrice"`
	Currency    string                 `json:"currency"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"isActive"`
	Categories  []string               `json:"categories"`
	Attributes  map[string]interface{} `json:"attributes"`
	Variants    []VariantDTO           `json:"variants"`
}

// TreeNode is one node of the hierarchical category selector. Children are
// sorted alphabetically by name at every level.
type TreeNode struct {
	CategoryID string     `json:"categoryId"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	Level      int64      `json:"level"`
	IsActive   bool       `json:"isActive"`
	Children   []TreeNode `json:"children"`
}

// ReadModel serves admin queries, bypassing the domain layer.
type ReadModel interface {
	// ListCategories / ListAttributes / ListProducts serve the DataTable
	// contract: free-text search, multi-column sort, offset paging,
	// unfiltered and filtered counts.
	ListCategories(ctx context.Context, req *datatable.Request) (*datatable.Response, error)
	ListAttributes(ctx context.Context, req *datatable.Request) (*datatable.Response, error)
	ListProducts(ctx context.Context, req *datatable.Request) (*datatable.Response, error)

	// CategoryTree returns the nested parent-selector tree.
	CategoryTree(ctx context.Context) ([]TreeNode, error)

	// GetProduct returns the product detail with variants.
	GetProduct(ctx context.Context, productID string) (*ProductDetail, error)
}

// TreeCache is a best-effort cache for the category tree. Implementations
// log failures and report misses; they never fail the read path.
type TreeCache interface {
	Get(ctx context.Context) ([]TreeNode, bool)
	Set(ctx context.Context, tree []TreeNode)
	Invalidate(ctx context.Context)
}
