package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Configuration constrains the shape of an attribute's settings. Each
// attribute type has exactly one configuration variant; a raw map is decoded
// into the variant for the attribute's type and validated at the boundary
// where it is set, so malformed shapes never persist.
type Configuration interface {
	// Type returns the attribute type this configuration belongs to.
	Type() AttributeType

	// Validate checks the configuration's own invariants.
	Validate() error

	// ValidateValue checks an assigned product/variant value against this
	// configuration.
	ValidateValue(value interface{}) error

	// ToMap renders the configuration as a plain map for JSON storage.
	ToMap() map[string]interface{}
}

// ConfigurationFromMap decodes a raw configuration map into the variant for
// the given attribute type and validates it. A nil map decodes to the type's
// empty configuration.
func ConfigurationFromMap(attrType AttributeType, raw map[string]interface{}) (Configuration, error) {
	var (
		cfg Configuration
		err error
	)

	switch attrType {
	case TypeText:
		cfg, err = decodeTextConfig(raw)
	case TypeNumber:
		cfg, err = decodeNumberConfig(raw)
	case TypeBoolean:
		cfg, err = decodeBooleanConfig(raw)
	case TypeSelect:
		cfg, err = decodeSelectConfig(raw)
	case TypeColor:
		cfg, err = decodeColorConfig(raw)
	case TypeDate:
		cfg = DateConfig{}
	case TypeDimensions:
		cfg, err = decodeDimensionsConfig(raw)
	case TypeWeight:
		cfg, err = decodeWeightConfig(raw)
	default:
		return nil, fmt.Errorf("%w: unknown attribute type %q", ErrInvalidConfiguration, attrType)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TextConfig constrains free-text values by length.
type TextConfig struct {
	MinLength *int64
	MaxLength *int64
}

func (c TextConfig) Type() AttributeType { return TypeText }

func (c TextConfig) Validate() error {
	if c.MinLength != nil && *c.MinLength < 0 {
		return fmt.Errorf("%w: minLength cannot be negative", ErrInvalidConfiguration)
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		return fmt.Errorf("%w: maxLength cannot be negative", ErrInvalidConfiguration)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MaxLength < *c.MinLength {
		return fmt.Errorf("%w: maxLength must be >= minLength", ErrInvalidConfiguration)
	}
	return nil
}

func (c TextConfig) ValidateValue(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected text", ErrInvalidAttributeValue)
	}
	length := int64(len([]rune(s)))
	if c.MinLength != nil && length < *c.MinLength {
		return fmt.Errorf("%w: shorter than minLength %d", ErrInvalidAttributeValue, *c.MinLength)
	}
	if c.MaxLength != nil && length > *c.MaxLength {
		return fmt.Errorf("%w: longer than maxLength %d", ErrInvalidAttributeValue, *c.MaxLength)
	}
	return nil
}

func (c TextConfig) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if c.MinLength != nil {
		m["minLength"] = *c.MinLength
	}
	if c.MaxLength != nil {
		m["maxLength"] = *c.MaxLength
	}
	return m
}

// NumberConfig constrains numeric values by range and step.
type NumberConfig struct {
	Min  *decimal.Decimal
	Max  *decimal.Decimal
	Step *decimal.Decimal
	Unit string
}

func (c NumberConfig) Type() AttributeType { return TypeNumber }

func (c NumberConfig) Validate() error {
	if c.Min != nil && c.Max != nil && c.Max.LessThan(*c.Min) {
		return fmt.Errorf("%w: max must be >= min", ErrInvalidConfiguration)
	}
	if c.Step != nil && !c.Step.IsPositive() {
		return fmt.Errorf("%w: step must be positive", ErrInvalidConfiguration)
	}
	return nil
}

func (c NumberConfig) ValidateValue(value interface{}) error {
	d, err := decimalFromAny(value)
	if err != nil {
		return fmt.Errorf("%w: expected a number", ErrInvalidAttributeValue)
	}
	if c.Min != nil && d.LessThan(*c.Min) {
		return fmt.Errorf("%w: below minimum %s", ErrInvalidAttributeValue, c.Min.String())
	}
	if c.Max != nil && d.GreaterThan(*c.Max) {
		return fmt.Errorf("%w: above maximum %s", ErrInvalidAttributeValue, c.Max.String())
	}
	return nil
}

func (c NumberConfig) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if c.Min != nil {
		m["min"] = c.Min.String()
	}
	if c.Max != nil {
		m["max"] = c.Max.String()
	}
	if c.Step != nil {
		m["step"] = c.Step.String()
	}
	if c.Unit != "" {
		m["unit"] = c.Unit
	}
	return m
}

// BooleanFormat selects how a boolean attribute renders.
type BooleanFormat string

const (
	FormatSwitch    BooleanFormat = "switch"
	FormatCheckbox  BooleanFormat = "checkbox"
	FormatYesNo     BooleanFormat = "yes-no"
	FormatTrueFalse BooleanFormat = "true-false"
)

// BooleanConfig sets the display format and default for boolean attributes.
type BooleanConfig struct {
	Format       BooleanFormat
	DefaultValue bool
}

func (c BooleanConfig) Type() AttributeType { return TypeBoolean }

func (c BooleanConfig) Validate() error {
	switch c.Format {
	case "", FormatSwitch, FormatCheckbox, FormatYesNo, FormatTrueFalse:
		return nil
	}
	return fmt.Errorf("%w: unknown boolean format %q", ErrInvalidConfiguration, c.Format)
}

func (c BooleanConfig) ValidateValue(value interface{}) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("%w: expected a boolean", ErrInvalidAttributeValue)
	}
	return nil
}

func (c BooleanConfig) ToMap() map[string]interface{} {
	m := map[string]interface{}{"defaultValue": c.DefaultValue}
	if c.Format != "" {
		m["format"] = string(c.Format)
	}
	return m
}

// SelectConfig holds the ordered option list for select attributes. The
// option list is the combination-key source for variants.
type SelectConfig struct {
	Values []string
}

func (c SelectConfig) Type() AttributeType { return TypeSelect }

func (c SelectConfig) Validate() error {
	if len(c.Values) == 0 {
		return fmt.Errorf("%w: select attributes require at least one value", ErrInvalidConfiguration)
	}
	seen := make(map[string]bool, len(c.Values))
	for _, v := range c.Values {
		if v == "" {
			return fmt.Errorf("%w: select values cannot be empty", ErrInvalidConfiguration)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate select value %q", ErrInvalidConfiguration, v)
		}
		seen[v] = true
	}
	return nil
}

func (c SelectConfig) ValidateValue(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected one of the select values", ErrInvalidAttributeValue)
	}
	for _, v := range c.Values {
		if v == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a configured select value", ErrInvalidAttributeValue, s)
}

func (c SelectConfig) ToMap() map[string]interface{} {
	values := make([]interface{}, len(c.Values))
	for i, v := range c.Values {
		values[i] = v
	}
	return map[string]interface{}{"values": values}
}

// ColorOption is a named color swatch.
type ColorOption struct {
	Name string
	Hex  string
}

// ColorConfig holds the color palette for color attributes.
type ColorConfig struct {
	Values []ColorOption
}

func (c ColorConfig) Type() AttributeType { return TypeColor }

func (c ColorConfig) Validate() error {
	for _, opt := range c.Values {
		if opt.Name == "" {
			return fmt.Errorf("%w: color name cannot be empty", ErrInvalidConfiguration)
		}
		if !hexColorPattern.MatchString(opt.Hex) {
			return fmt.Errorf("%w: %q is not a #RRGGBB color", ErrInvalidConfiguration, opt.Hex)
		}
	}
	return nil
}

func (c ColorConfig) ValidateValue(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected a color name", ErrInvalidAttributeValue)
	}
	for _, opt := range c.Values {
		if opt.Name == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a configured color", ErrInvalidAttributeValue, s)
}

func (c ColorConfig) ToMap() map[string]interface{} {
	values := make([]interface{}, len(c.Values))
	for i, opt := range c.Values {
		values[i] = map[string]interface{}{"name": opt.Name, "hex": opt.Hex}
	}
	return map[string]interface{}{"values": values}
}

// DateConfig has no settings; date attributes accept ISO dates.
type DateConfig struct{}

func (c DateConfig) Type() AttributeType { return TypeDate }

func (c DateConfig) Validate() error { return nil }

func (c DateConfig) ValidateValue(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected a date string", ErrInvalidAttributeValue)
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return fmt.Errorf("%w: %q is not an ISO date", ErrInvalidAttributeValue, s)
}

func (c DateConfig) ToMap() map[string]interface{} {
	return map[string]interface{}{}
}

// DimensionUnit is the measurement unit for dimensions attributes.
type DimensionUnit string

const (
	UnitCentimeter DimensionUnit = "cm"
	UnitMeter      DimensionUnit = "m"
	UnitInch       DimensionUnit = "in"
	UnitFoot       DimensionUnit = "ft"
)

// DimensionsConfig holds default package dimensions and their unit.
type DimensionsConfig struct {
	Length *decimal.Decimal
	Width  *decimal.Decimal
	Height *decimal.Decimal
	Unit   DimensionUnit
}

func (c DimensionsConfig) Type() AttributeType { return TypeDimensions }

func (c DimensionsConfig) Validate() error {
	switch c.Unit {
	case "", UnitCentimeter, UnitMeter, UnitInch, UnitFoot:
	default:
		return fmt.Errorf("%w: unknown dimension unit %q", ErrInvalidConfiguration, c.Unit)
	}
	for name, d := range map[string]*decimal.Decimal{"length": c.Length, "width": c.Width, "height": c.Height} {
		if d != nil && d.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidConfiguration, name)
		}
	}
	return nil
}

func (c DimensionsConfig) ValidateValue(value interface{}) error {
	m, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: expected an object with length/width/height", ErrInvalidAttributeValue)
	}
	for _, key := range []string{"length", "width", "height"} {
		raw, ok := m[key]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidAttributeValue, key)
		}
		d, err := decimalFromAny(raw)
		if err != nil || d.IsNegative() {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidAttributeValue, key)
		}
	}
	return nil
}

func (c DimensionsConfig) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if c.Length != nil {
		m["length"] = c.Length.String()
	}
	if c.Width != nil {
		m["width"] = c.Width.String()
	}
	if c.Height != nil {
		m["height"] = c.Height.String()
	}
	if c.Unit != "" {
		m["unit"] = string(c.Unit)
	}
	return m
}

// WeightUnit is the measurement unit for weight attributes.
type WeightUnit string

const (
	UnitKilogram WeightUnit = "kg"
	UnitGram     WeightUnit = "g"
	UnitPound    WeightUnit = "lb"
	UnitOunce    WeightUnit = "oz"
)

// WeightConfig sets the unit and display precision for weight attributes.
type WeightConfig struct {
	Unit      WeightUnit
	Precision int64
}

func (c WeightConfig) Type() AttributeType { return TypeWeight }

func (c WeightConfig) Validate() error {
	switch c.Unit {
	case "", UnitKilogram, UnitGram, UnitPound, UnitOunce:
	default:
		return fmt.Errorf("%w: unknown weight unit %q", ErrInvalidConfiguration, c.Unit)
	}
	if c.Precision < 0 || c.Precision > 3 {
		return fmt.Errorf("%w: precision must be between 0 and 3", ErrInvalidConfiguration)
	}
	return nil
}

func (c WeightConfig) ValidateValue(value interface{}) error {
	d, err := decimalFromAny(value)
	if err != nil {
		return fmt.Errorf("%w: expected a number", ErrInvalidAttributeValue)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: weight cannot be negative", ErrInvalidAttributeValue)
	}
	return nil
}

func (c WeightConfig) ToMap() map[string]interface{} {
	m := map[string]interface{}{"precision": c.Precision}
	if c.Unit != "" {
		m["unit"] = string(c.Unit)
	}
	return m
}

// --- decoding helpers -------------------------------------------------------

func decodeTextConfig(raw map[string]interface{}) (TextConfig, error) {
	var cfg TextConfig
	var err error
	if cfg.MinLength, err = optionalInt(raw, "minLength"); err != nil {
		return cfg, err
	}
	if cfg.MaxLength, err = optionalInt(raw, "maxLength"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeNumberConfig(raw map[string]interface{}) (NumberConfig, error) {
	var cfg NumberConfig
	var err error
	if cfg.Min, err = optionalDecimal(raw, "min"); err != nil {
		return cfg, err
	}
	if cfg.Max, err = optionalDecimal(raw, "max"); err != nil {
		return cfg, err
	}
	if cfg.Step, err = optionalDecimal(raw, "step"); err != nil {
		return cfg, err
	}
	cfg.Unit, err = optionalString(raw, "unit")
	return cfg, err
}

func decodeBooleanConfig(raw map[string]interface{}) (BooleanConfig, error) {
	var cfg BooleanConfig
	format, err := optionalString(raw, "format")
	if err != nil {
		return cfg, err
	}
	cfg.Format = BooleanFormat(format)
	if v, ok := raw["defaultValue"]; ok {
		b, ok := v.(bool)
		if !ok {
			return cfg, fmt.Errorf("%w: defaultValue must be a boolean", ErrInvalidConfiguration)
		}
		cfg.DefaultValue = b
	}
	return cfg, nil
}

func decodeSelectConfig(raw map[string]interface{}) (SelectConfig, error) {
	var cfg SelectConfig
	rawValues, ok := raw["values"]
	if !ok {
		return cfg, nil // caught by Validate: empty value list
	}
	list, ok := rawValues.([]interface{})
	if !ok {
		return cfg, fmt.Errorf("%w: values must be a list", ErrInvalidConfiguration)
	}
	cfg.Values = make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return cfg, fmt.Errorf("%w: select values must be strings", ErrInvalidConfiguration)
		}
		cfg.Values = append(cfg.Values, s)
	}
	return cfg, nil
}

func decodeColorConfig(raw map[string]interface{}) (ColorConfig, error) {
	var cfg ColorConfig
	rawValues, ok := raw["values"]
	if !ok {
		return cfg, nil
	}
	list, ok := rawValues.([]interface{})
	if !ok {
		return cfg, fmt.Errorf("%w: values must be a list", ErrInvalidConfiguration)
	}
	cfg.Values = make([]ColorOption, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return cfg, fmt.Errorf("%w: color values must be {name, hex} objects", ErrInvalidConfiguration)
		}
		name, _ := entry["name"].(string)
		hex, _ := entry["hex"].(string)
		cfg.Values = append(cfg.Values, ColorOption{Name: name, Hex: hex})
	}
	return cfg, nil
}

func decodeDimensionsConfig(raw map[string]interface{}) (DimensionsConfig, error) {
	var cfg DimensionsConfig
	var err error
	if cfg.Length, err = optionalDecimal(raw, "length"); err != nil {
		return cfg, err
	}
	if cfg.Width, err = optionalDecimal(raw, "width"); err != nil {
		return cfg, err
	}
	if cfg.Height, err = optionalDecimal(raw, "height"); err != nil {
		return cfg, err
	}
	unit, err := optionalString(raw, "unit")
	cfg.Unit = DimensionUnit(unit)
	return cfg, err
}

func decodeWeightConfig(raw map[string]interface{}) (WeightConfig, error) {
	var cfg WeightConfig
	unit, err := optionalString(raw, "unit")
	if err != nil {
		return cfg, err
	}
	cfg.Unit = WeightUnit(unit)
	precision, err := optionalInt(raw, "precision")
	if err != nil {
		return cfg, err
	}
	if precision != nil {
		cfg.Precision = *precision
	}
	return cfg, nil
}

func optionalInt(raw map[string]interface{}, key string) (*int64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case int:
		i := int64(n)
		return &i, nil
	case int64:
		return &n, nil
	case float64:
		i := int64(n)
		if float64(i) != n {
			return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidConfiguration, key)
		}
		return &i, nil
	}
	return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidConfiguration, key)
}

func optionalDecimal(raw map[string]interface{}, key string) (*decimal.Decimal, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	d, err := decimalFromAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidConfiguration, key)
	}
	return &d, nil
}

func optionalString(raw map[string]interface{}, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidConfiguration, key)
	}
	return s, nil
}

func decimalFromAny(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		return decimal.NewFromString(n)
	}
	return decimal.Decimal{}, fmt.Errorf("not a number: %v", v)
}
