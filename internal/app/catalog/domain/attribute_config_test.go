package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationFromMap(t *testing.T) {
	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(AttributeType("matrix"), nil)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("nil map decodes to empty config", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeText, nil)
		require.NoError(t, err)
		assert.Equal(t, TypeText, cfg.Type())
	})
}

func TestTextConfig(t *testing.T) {
	t.Run("length bounds enforced on values", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeText, map[string]interface{}{
			"minLength": float64(2),
			"maxLength": float64(5),
		})
		require.NoError(t, err)

		assert.NoError(t, cfg.ValidateValue("abc"))
		assert.ErrorIs(t, cfg.ValidateValue("a"), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue("abcdef"), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue(42), ErrInvalidAttributeValue)
	})

	t.Run("max below min rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeText, map[string]interface{}{
			"minLength": float64(10),
			"maxLength": float64(5),
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("negative bound rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeText, map[string]interface{}{
			"minLength": float64(-1),
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("fractional bound rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeText, map[string]interface{}{
			"maxLength": 2.5,
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestNumberConfig(t *testing.T) {
	t.Run("range enforced on values", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeNumber, map[string]interface{}{
			"min":  float64(0),
			"max":  float64(100),
			"unit": "GB",
		})
		require.NoError(t, err)

		assert.NoError(t, cfg.ValidateValue(float64(64)))
		assert.NoError(t, cfg.ValidateValue("100"))
		assert.ErrorIs(t, cfg.ValidateValue(float64(101)), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue(float64(-1)), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue("not a number"), ErrInvalidAttributeValue)
	})

	t.Run("max below min rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeNumber, map[string]interface{}{
			"min": float64(10),
			"max": float64(1),
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("non-positive step rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeNumber, map[string]interface{}{
			"step": float64(0),
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestBooleanConfig(t *testing.T) {
	t.Run("known formats accepted", func(t *testing.T) {
		for _, format := range []string{"switch", "checkbox", "yes-no", "true-false"} {
			cfg, err := ConfigurationFromMap(TypeBoolean, map[string]interface{}{"format": format})
			require.NoError(t, err, format)
			assert.NoError(t, cfg.ValidateValue(true))
		}
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeBoolean, map[string]interface{}{"format": "toggle"})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("non-boolean value rejected", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeBoolean, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, cfg.ValidateValue("yes"), ErrInvalidAttributeValue)
	})
}

func TestSelectConfig(t *testing.T) {
	t.Run("value must be one of the options", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeSelect, map[string]interface{}{
			"values": []interface{}{"S", "M", "L"},
		})
		require.NoError(t, err)

		assert.NoError(t, cfg.ValidateValue("M"))
		assert.ErrorIs(t, cfg.ValidateValue("XL"), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue(2), ErrInvalidAttributeValue)
	})

	t.Run("empty option list rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeSelect, map[string]interface{}{})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("duplicate options rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeSelect, map[string]interface{}{
			"values": []interface{}{"S", "S"},
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("empty option rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeSelect, map[string]interface{}{
			"values": []interface{}{""},
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestColorConfig(t *testing.T) {
	t.Run("value must be a configured color name", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeColor, map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{"name": "Red", "hex": "#FF0000"},
				map[string]interface{}{"name": "Blue", "hex": "#0000FF"},
			},
		})
		require.NoError(t, err)

		assert.NoError(t, cfg.ValidateValue("Red"))
		assert.ErrorIs(t, cfg.ValidateValue("Green"), ErrInvalidAttributeValue)
	})

	t.Run("malformed hex rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeColor, map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{"name": "Red", "hex": "red"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("nameless color rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeColor, map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{"hex": "#FF0000"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestDateConfig(t *testing.T) {
	cfg, err := ConfigurationFromMap(TypeDate, nil)
	require.NoError(t, err)

	assert.NoError(t, cfg.ValidateValue("2026-03-01"))
	assert.NoError(t, cfg.ValidateValue("2026-03-01T10:00:00Z"))
	assert.ErrorIs(t, cfg.ValidateValue("01/03/2026"), ErrInvalidAttributeValue)
	assert.ErrorIs(t, cfg.ValidateValue(20260301), ErrInvalidAttributeValue)
}

func TestDimensionsConfig(t *testing.T) {
	t.Run("value requires all three measures", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeDimensions, map[string]interface{}{"unit": "cm"})
		require.NoError(t, err)

		assert.NoError(t, cfg.ValidateValue(map[string]interface{}{
			"length": float64(10), "width": float64(5), "height": float64(2),
		}))
		assert.ErrorIs(t, cfg.ValidateValue(map[string]interface{}{
			"length": float64(10), "width": float64(5),
		}), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue(map[string]interface{}{
			"length": float64(-1), "width": float64(5), "height": float64(2),
		}), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue("10x5x2"), ErrInvalidAttributeValue)
	})

	t.Run("unknown unit rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeDimensions, map[string]interface{}{"unit": "furlong"})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("negative default rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeDimensions, map[string]interface{}{"length": float64(-3)})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestWeightConfig(t *testing.T) {
	t.Run("non-negative numbers accepted", func(t *testing.T) {
		cfg, err := ConfigurationFromMap(TypeWeight, map[string]interface{}{
			"unit":      "kg",
			"precision": float64(2),
		})
		require.NoError(t, err)

		assert.NoError(t, cfg.ValidateValue(1.25))
		assert.ErrorIs(t, cfg.ValidateValue(-0.5), ErrInvalidAttributeValue)
		assert.ErrorIs(t, cfg.ValidateValue(true), ErrInvalidAttributeValue)
	})

	t.Run("unknown unit rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeWeight, map[string]interface{}{"unit": "stone"})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("precision out of range rejected", func(t *testing.T) {
		_, err := ConfigurationFromMap(TypeWeight, map[string]interface{}{"precision": float64(4)})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestConfigToMapRoundTrip(t *testing.T) {
	raw := map[string]interface{}{
		"values": []interface{}{"S", "M", "L"},
	}
	cfg, err := ConfigurationFromMap(TypeSelect, raw)
	require.NoError(t, err)

	again, err := ConfigurationFromMap(TypeSelect, cfg.ToMap())
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
