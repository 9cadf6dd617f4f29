package domain

import (
	"sort"
	"time"

	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// Field names for product change tracking
const (
	FieldBasePrice  = "base_price"
	FieldSKU        = "sku"
	FieldCategories = "categories"
	FieldAttributes = "attributes"
)

// AttributeValue is the envelope a product stores per attribute assignment.
// The wrapper leaves room for per-value metadata later without a schema
// migration.
type AttributeValue struct {
	Value interface{} `json:"value"`
}

// Product aggregates category memberships, attribute assignments and
// variants. Slug and SKU uniqueness are probed at the repository boundary by
// the usecases; invalid category references are silently dropped while
// invalid attribute references fail (deliberate asymmetry, matching how
// admins bulk-assign categories vs. type attribute values by hand).
type Product struct {
	id          string
	name        string
	slug        Slug
	description string
	basePrice   *Money
	sku         *string
	isActive    bool
	categories  map[string]struct{}
	attributes  map[string]AttributeValue
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	clock   clock.Clock
	changes *ChangeTracker
}

// NewProduct creates an active product.
func NewProduct(id, name string, slug Slug, basePrice *Money, now time.Time, clk clock.Clock) (*Product, error) {
	return newProduct(id, name, slug, basePrice, true, now, clk)
}

// NewInactiveProduct creates a product that starts hidden.
func NewInactiveProduct(id, name string, slug Slug, basePrice *Money, now time.Time, clk clock.Clock) (*Product, error) {
	return newProduct(id, name, slug, basePrice, false, now, clk)
}

func newProduct(id, name string, slug Slug, basePrice *Money, active bool, now time.Time, clk clock.Clock) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if slug.IsZero() {
		return nil, ErrEmptySlug
	}
	if basePrice == nil || basePrice.IsNegative() {
		return nil, ErrNegativeAmount
	}

	p := &Product{
		id:         id,
		name:       name,
		slug:       slug,
		basePrice:  basePrice.Copy(),
		isActive:   active,
		categories: make(map[string]struct{}),
		attributes: make(map[string]AttributeValue),
		version:    1,
		createdAt:  now,
		updatedAt:  now,
		clock:      clk,
		changes:    NewChangeTracker(),
	}

	p.changes.Record(FieldName, nil, name)
	p.changes.Record(FieldSlug, nil, slug.String())
	p.changes.Record(FieldBasePrice, nil, basePrice.String())

	return p, nil
}

// ReconstructProduct rehydrates a Product from storage.
func ReconstructProduct(
	id, name string,
	slug Slug,
	description string,
	basePrice *Money,
	sku *string,
	isActive bool,
	categories []string,
	attributes map[string]AttributeValue,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Product {
	catSet := make(map[string]struct{}, len(categories))
	for _, id := range categories {
		catSet[id] = struct{}{}
	}
	if attributes == nil {
		attributes = make(map[string]AttributeValue)
	}
	return &Product{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		basePrice:   basePrice,
		sku:         sku,
		isActive:    isActive,
		categories:  catSet,
		attributes:  attributes,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		clock:       clk,
		changes:     NewChangeTracker(),
	}
}

// Getters
func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Slug() Slug           { return p.slug }
func (p *Product) Description() string  { return p.description }
func (p *Product) BasePrice() *Money    { return p.basePrice.Copy() }
func (p *Product) SKU() *string         { return p.sku }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) Version() int64       { return p.version }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker { return p.changes }

// CategoryIDs returns the assigned category ids, sorted for stable output.
func (p *Product) CategoryIDs() []string {
	ids := make([]string, 0, len(p.categories))
	for id := range p.categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasCategory reports whether the product is assigned to the category.
func (p *Product) HasCategory(categoryID string) bool {
	_, ok := p.categories[categoryID]
	return ok
}

// Attributes returns a copy of the attribute assignment map.
func (p *Product) Attributes() map[string]AttributeValue {
	out := make(map[string]AttributeValue, len(p.attributes))
	for k, v := range p.attributes {
		out[k] = v
	}
	return out
}

// Update applies an admin edit. Callers re-probe slug/sku uniqueness only
// when those values actually changed; SlugChanged/SKUChanged on the result
// report that.
func (p *Product) Update(name string, slug Slug, basePrice *Money, description string, sku *string) error {
	if name == "" {
		return ErrEmptyName
	}
	if slug.IsZero() {
		return ErrEmptySlug
	}
	if basePrice == nil || basePrice.IsNegative() {
		return ErrNegativeAmount
	}

	if p.name != name {
		p.changes.Record(FieldName, p.name, name)
		p.name = name
	}
	if !p.slug.Equals(slug) {
		p.changes.Record(FieldSlug, p.slug.String(), slug.String())
		p.slug = slug
	}
	if !p.basePrice.Equals(basePrice) {
		p.changes.Record(FieldBasePrice, p.basePrice.String(), basePrice.String())
		p.basePrice = basePrice.Copy()
	}
	if p.description != description {
		p.changes.Record(FieldDescription, p.description, description)
		p.description = description
	}
	if !equalOptString(p.sku, sku) {
		p.changes.Record(FieldSKU, p.sku, sku)
		p.sku = sku
	}
	p.touch()
	return nil
}

// AddCategory assigns the product to a category. Existence of the category
// is checked by the usecase; a missing category is skipped there, not here.
func (p *Product) AddCategory(categoryID string) {
	if _, ok := p.categories[categoryID]; ok {
		return
	}
	before := p.CategoryIDs()
	p.categories[categoryID] = struct{}{}
	p.changes.Record(FieldCategories, before, p.CategoryIDs())
	p.touch()
}

// RemoveCategory unassigns a category. Removing an absent category is a
// no-op.
func (p *Product) RemoveCategory(categoryID string) {
	if _, ok := p.categories[categoryID]; !ok {
		return
	}
	before := p.CategoryIDs()
	delete(p.categories, categoryID)
	p.changes.Record(FieldCategories, before, p.CategoryIDs())
	p.touch()
}

// SetAttribute stores an attribute assignment in its envelope. The usecase
// has already resolved the attribute and validated the value against its
// type.
func (p *Product) SetAttribute(attributeID string, value interface{}) {
	old, existed := p.attributes[attributeID]
	var oldVal interface{}
	if existed {
		oldVal = old.Value
	}
	p.attributes[attributeID] = AttributeValue{Value: value}
	p.changes.Record(FieldAttributes+"."+attributeID, oldVal, value)
	p.touch()
}

// RemoveAttribute drops an attribute assignment.
func (p *Product) RemoveAttribute(attributeID string) {
	old, existed := p.attributes[attributeID]
	if !existed {
		return
	}
	delete(p.attributes, attributeID)
	p.changes.Record(FieldAttributes+"."+attributeID, old.Value, nil)
	p.touch()
}

// SetActive toggles visibility; setting the current state is a no-op
// success.
func (p *Product) SetActive(active bool) {
	if p.isActive == active {
		return
	}
	p.changes.Record(FieldIsActive, p.isActive, active)
	p.isActive = active
	p.touch()
}

// SlugChanged reports whether this cycle modified the slug (drives the
// conditional uniqueness probe).
func (p *Product) SlugChanged() bool {
	return p.changes.Dirty(FieldSlug)
}

// SKUChanged reports whether this cycle modified the sku.
func (p *Product) SKUChanged() bool {
	return p.changes.Dirty(FieldSKU)
}

func (p *Product) touch() {
	p.updatedAt = p.clock.Now()
}

func equalOptString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
