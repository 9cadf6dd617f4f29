package domain

import (
	"fmt"
	"time"

	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// Field names for attribute change tracking
const (
	FieldDisplayName   = "display_name"
	FieldFilterable    = "filterable"
	FieldSearchable    = "searchable"
	FieldIsVariant     = "is_variant"
	FieldConfiguration = "configuration"
)

// AttributeType enumerates the supported attribute value types.
type AttributeType string

const (
	TypeText       AttributeType = "text"
	TypeNumber     AttributeType = "number"
	TypeBoolean    AttributeType = "boolean"
	TypeSelect     AttributeType = "select"
	TypeColor      AttributeType = "color"
	TypeDate       AttributeType = "date"
	TypeDimensions AttributeType = "dimensions"
	TypeWeight     AttributeType = "weight"
)

// ValidAttributeType reports whether t is a known attribute type.
func ValidAttributeType(t AttributeType) bool {
	switch t {
	case TypeText, TypeNumber, TypeBoolean, TypeSelect, TypeColor, TypeDate, TypeDimensions, TypeWeight:
		return true
	}
	return false
}

// Attribute is the aggregate root for a typed product attribute descriptor.
// The name is an immutable system key; name uniqueness is probed at the
// repository boundary by the creating usecase, not here.
type Attribute struct {
	id          string
	name        string
	displayName string
	attrType    AttributeType
	filterable  bool
	searchable  bool
	isVariant   bool
	config      Configuration
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	clock   clock.Clock
	changes *ChangeTracker
}

// NewAttribute creates a new Attribute aggregate. The configuration map is
// decoded against the attribute type and rejected if its shape does not fit.
func NewAttribute(id, name, displayName string, attrType AttributeType, rawConfig map[string]interface{}, now time.Time, clk clock.Clock) (*Attribute, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !ValidAttributeType(attrType) {
		return nil, fmt.Errorf("%w: unknown attribute type %q", ErrInvalidConfiguration, attrType)
	}
	if displayName == "" {
		displayName = name
	}

	cfg, err := ConfigurationFromMap(attrType, rawConfig)
	if err != nil {
		return nil, err
	}

	a := &Attribute{
		id:          id,
		name:        name,
		displayName: displayName,
		attrType:    attrType,
		config:      cfg,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		clock:       clk,
		changes:     NewChangeTracker(),
	}

	a.changes.Record(FieldDisplayName, nil, displayName)
	a.changes.Record(FieldConfiguration, nil, cfg.ToMap())

	return a, nil
}

// ReconstructAttribute rehydrates an Attribute from storage.
func ReconstructAttribute(
	id, name, displayName string,
	attrType AttributeType,
	rawConfig map[string]interface{},
	filterable, searchable, isVariant bool,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) (*Attribute, error) {
	cfg, err := ConfigurationFromMap(attrType, rawConfig)
	if err != nil {
		return nil, err
	}
	return &Attribute{
		id:          id,
		name:        name,
		displayName: displayName,
		attrType:    attrType,
		filterable:  filterable,
		searchable:  searchable,
		isVariant:   isVariant,
		config:      cfg,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		clock:       clk,
		changes:     NewChangeTracker(),
	}, nil
}

// Getters
func (a *Attribute) ID() string              { return a.id }
func (a *Attribute) Name() string            { return a.name }
func (a *Attribute) DisplayName() string     { return a.displayName }
func (a *Attribute) AttrType() AttributeType { return a.attrType }
func (a *Attribute) Filterable() bool        { return a.filterable }
func (a *Attribute) Searchable() bool        { return a.searchable }
func (a *Attribute) IsVariant() bool         { return a.isVariant }
func (a *Attribute) Configuration() Configuration { return a.config }
func (a *Attribute) Version() int64          { return a.version }
func (a *Attribute) CreatedAt() time.Time    { return a.createdAt }
func (a *Attribute) UpdatedAt() time.Time    { return a.updatedAt }
func (a *Attribute) Changes() *ChangeTracker { return a.changes }

// SetDisplayName updates the human-facing label.
func (a *Attribute) SetDisplayName(displayName string) error {
	if displayName == "" {
		return ErrEmptyName
	}
	if a.displayName == displayName {
		return nil
	}
	a.changes.Record(FieldDisplayName, a.displayName, displayName)
	a.displayName = displayName
	a.touch()
	return nil
}

// SetFilterable toggles the filterable flag.
func (a *Attribute) SetFilterable(filterable bool) {
	if a.filterable == filterable {
		return
	}
	a.changes.Record(FieldFilterable, a.filterable, filterable)
	a.filterable = filterable
	a.touch()
}

// SetSearchable toggles the searchable flag.
func (a *Attribute) SetSearchable(searchable bool) {
	if a.searchable == searchable {
		return
	}
	a.changes.Record(FieldSearchable, a.searchable, searchable)
	a.searchable = searchable
	a.touch()
}

// SetIsVariant toggles eligibility for variant combinations.
func (a *Attribute) SetIsVariant(isVariant bool) {
	if a.isVariant == isVariant {
		return
	}
	a.changes.Record(FieldIsVariant, a.isVariant, isVariant)
	a.isVariant = isVariant
	a.touch()
}

// UpdateConfiguration mutates a single configuration key. The resulting map
// is re-decoded and validated against the attribute type before it sticks.
func (a *Attribute) UpdateConfiguration(key string, value interface{}) error {
	current := a.config.ToMap()
	updated := make(map[string]interface{}, len(current)+1)
	for k, v := range current {
		updated[k] = v
	}
	if value == nil {
		delete(updated, key)
	} else {
		updated[key] = value
	}

	cfg, err := ConfigurationFromMap(a.attrType, updated)
	if err != nil {
		return err
	}
	a.changes.Record(FieldConfiguration, current, cfg.ToMap())
	a.config = cfg
	a.touch()
	return nil
}

// ReplaceConfiguration discards all prior configuration keys. Callers that
// want "leave unchanged" must not call this; an empty map means "clear
// everything".
func (a *Attribute) ReplaceConfiguration(raw map[string]interface{}) error {
	cfg, err := ConfigurationFromMap(a.attrType, raw)
	if err != nil {
		return err
	}
	a.changes.Record(FieldConfiguration, a.config.ToMap(), cfg.ToMap())
	a.config = cfg
	a.touch()
	return nil
}

// ValidateValue checks a product/variant value assignment against this
// attribute's type and configuration. The error names the attribute so
// handlers can surface which assignment failed.
func (a *Attribute) ValidateValue(value interface{}) error {
	if err := a.config.ValidateValue(value); err != nil {
		return fmt.Errorf("attribute %q: %w", a.name, err)
	}
	return nil
}

func (a *Attribute) touch() {
	a.updatedAt = a.clock.Now()
}
