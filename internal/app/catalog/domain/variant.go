package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// Field names for variant change tracking
const (
	FieldPrice           = "price"
	FieldStockQuantity   = "stock_quantity"
	FieldAttributeValues = "attribute_values"
	FieldMetadata        = "metadata"
)

// ProductVariant is a sellable variation of a product, identified within the
// product by its combination of variant-flagged attribute values. The
// combination must be unique among the product's variants; the SKU is unique
// globally. Active state and stock are orthogonal: an out-of-stock variant
// can stay active.
type ProductVariant struct {
	id              string
	productID       string
	sku             string
	price           *Money
	stockQuantity   int64
	isActive        bool
	attributeValues map[string]interface{}
	metadata        map[string]interface{}
	version         int64
	createdAt       time.Time
	updatedAt       time.Time

	clock   clock.Clock
	changes *ChangeTracker
}

// NewProductVariant creates a variant. A nil price means the creating
// usecase snapshots the product's current base price into the variant, so
// the stored price never silently tracks later base-price changes.
func NewProductVariant(id, productID, sku string, price *Money, stockQuantity int64, now time.Time, clk clock.Clock) (*ProductVariant, error) {
	if productID == "" {
		return nil, ErrProductNotFound
	}
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrEmptyName)
	}
	if stockQuantity < 0 {
		return nil, ErrNegativeStock
	}
	if price != nil && price.IsNegative() {
		return nil, ErrNegativeAmount
	}

	v := &ProductVariant{
		id:              id,
		productID:       productID,
		sku:             sku,
		stockQuantity:   stockQuantity,
		isActive:        true,
		attributeValues: make(map[string]interface{}),
		metadata:        make(map[string]interface{}),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
		clock:           clk,
		changes:         NewChangeTracker(),
	}
	if price != nil {
		v.price = price.Copy()
		v.changes.Record(FieldPrice, nil, price.String())
	}
	v.changes.Record(FieldSKU, nil, sku)
	v.changes.Record(FieldStockQuantity, nil, stockQuantity)

	return v, nil
}

// ReconstructProductVariant rehydrates a variant from storage.
func ReconstructProductVariant(
	id, productID, sku string,
	price *Money,
	stockQuantity int64,
	isActive bool,
	attributeValues map[string]interface{},
	metadata map[string]interface{},
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *ProductVariant {
	if attributeValues == nil {
		attributeValues = make(map[string]interface{})
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &ProductVariant{
		id:              id,
		productID:       productID,
		sku:             sku,
		price:           price,
		stockQuantity:   stockQuantity,
		isActive:        isActive,
		attributeValues: attributeValues,
		metadata:        metadata,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		clock:           clk,
		changes:         NewChangeTracker(),
	}
}

// Getters
func (v *ProductVariant) ID() string           { return v.id }
func (v *ProductVariant) ProductID() string    { return v.productID }
func (v *ProductVariant) SKU() string          { return v.sku }
func (v *ProductVariant) StockQuantity() int64 { return v.stockQuantity }
func (v *ProductVariant) IsActive() bool       { return v.isActive }
func (v *ProductVariant) Version() int64       { return v.version }
func (v *ProductVariant) CreatedAt() time.Time { return v.createdAt }
func (v *ProductVariant) UpdatedAt() time.Time { return v.updatedAt }
func (v *ProductVariant) Changes() *ChangeTracker { return v.changes }

// Price returns the variant's own price, or nil when it mirrors the
// product's base price on the read path.
func (v *ProductVariant) Price() *Money {
	if v.price == nil {
		return nil
	}
	return v.price.Copy()
}

// AttributeValues returns a copy of the variant's attribute assignments.
func (v *ProductVariant) AttributeValues() map[string]interface{} {
	out := make(map[string]interface{}, len(v.attributeValues))
	for k, val := range v.attributeValues {
		out[k] = val
	}
	return out
}

// Metadata returns a copy of the free-form metadata map.
func (v *ProductVariant) Metadata() map[string]interface{} {
	out := make(map[string]interface{}, len(v.metadata))
	for k, val := range v.metadata {
		out[k] = val
	}
	return out
}

// SetAttributeValue stores a variant-attribute assignment. The usecase has
// already checked the attribute's isVariant flag, validated the value and
// will re-check combination uniqueness against sibling variants.
func (v *ProductVariant) SetAttributeValue(attributeID string, value interface{}) {
	old := v.attributeValues[attributeID]
	v.attributeValues[attributeID] = value
	v.changes.Record(FieldAttributeValues+"."+attributeID, old, value)
	v.touch()
}

// CombinationKey derives the variant's identity within its product: the
// sorted (attributeID, value) pairs joined into one string. Two variants of
// the same product may never share a key.
func (v *ProductVariant) CombinationKey() string {
	if len(v.attributeValues) == 0 {
		return ""
	}
	ids := make([]string, 0, len(v.attributeValues))
	for id := range v.attributeValues {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pairs := make([]string, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, fmt.Sprintf("%s=%v", id, v.attributeValues[id]))
	}
	return strings.Join(pairs, "|")
}

// SetStockQuantity updates stock. Negative values fail; zero stock does not
// deactivate the variant.
func (v *ProductVariant) SetStockQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	if v.stockQuantity == quantity {
		return nil
	}
	v.changes.Record(FieldStockQuantity, v.stockQuantity, quantity)
	v.stockQuantity = quantity
	v.touch()
	return nil
}

// SetPrice overrides the variant price.
func (v *ProductVariant) SetPrice(price *Money) error {
	if price == nil {
		return ErrNegativeAmount
	}
	if price.IsNegative() {
		return ErrNegativeAmount
	}
	if v.price != nil && v.price.Equals(price) {
		return nil
	}
	var old interface{}
	if v.price != nil {
		old = v.price.String()
	}
	v.changes.Record(FieldPrice, old, price.String())
	v.price = price.Copy()
	v.touch()
	return nil
}

// SetMetadata replaces a single metadata key.
func (v *ProductVariant) SetMetadata(key string, value interface{}) {
	old := v.metadata[key]
	v.metadata[key] = value
	v.changes.Record(FieldMetadata+"."+key, old, value)
	v.touch()
}

// SetActive toggles the variant; setting the current state is a no-op
// success.
func (v *ProductVariant) SetActive(active bool) {
	if v.isActive == active {
		return
	}
	v.changes.Record(FieldIsActive, v.isActive, active)
	v.isActive = active
	v.touch()
}

func (v *ProductVariant) touch() {
	v.updatedAt = v.clock.Now()
}
