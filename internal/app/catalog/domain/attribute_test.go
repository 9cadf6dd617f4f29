package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

func newSizeAttribute(t *testing.T, clk clock.Clock) *Attribute {
	t.Helper()
	a, err := NewAttribute("attr-1", "size", "Size", TypeSelect, map[string]interface{}{
		"values": []interface{}{"S", "M", "L"},
	}, clk.Now(), clk)
	require.NoError(t, err)
	return a
}

func TestNewAttribute(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("valid attribute", func(t *testing.T) {
		a := newSizeAttribute(t, clk)

		assert.Equal(t, "size", a.Name())
		assert.Equal(t, "Size", a.DisplayName())
		assert.Equal(t, TypeSelect, a.AttrType())
		assert.False(t, a.IsVariant())
		assert.Equal(t, int64(1), a.Version())
	})

	t.Run("display name defaults to name", func(t *testing.T) {
		a, err := NewAttribute("attr-2", "material", "", TypeText, nil, clk.Now(), clk)
		require.NoError(t, err)
		assert.Equal(t, "material", a.DisplayName())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewAttribute("attr-3", "", "Label", TypeText, nil, clk.Now(), clk)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := NewAttribute("attr-3", "shape", "Shape", AttributeType("polygon"), nil, clk.Now(), clk)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("configuration mismatching the type rejected", func(t *testing.T) {
		_, err := NewAttribute("attr-3", "size", "Size", TypeSelect, map[string]interface{}{
			"values": []interface{}{},
		}, clk.Now(), clk)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestAttributeSetters(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("display name change tracked", func(t *testing.T) {
		a := newSizeAttribute(t, clk)
		a.Changes().Clear()

		require.NoError(t, a.SetDisplayName("Garment Size"))
		assert.Equal(t, "Garment Size", a.DisplayName())
		assert.True(t, a.Changes().Dirty(FieldDisplayName))
	})

	t.Run("empty display name rejected", func(t *testing.T) {
		a := newSizeAttribute(t, clk)
		assert.ErrorIs(t, a.SetDisplayName(""), ErrEmptyName)
	})

	t.Run("flag toggles are idempotent", func(t *testing.T) {
		a := newSizeAttribute(t, clk)
		a.Changes().Clear()

		a.SetFilterable(false)
		a.SetSearchable(false)
		a.SetIsVariant(false)
		assert.False(t, a.Changes().HasChanges())

		a.SetFilterable(true)
		a.SetSearchable(true)
		a.SetIsVariant(true)
		assert.True(t, a.Changes().Dirty(FieldFilterable))
		assert.True(t, a.Changes().Dirty(FieldSearchable))
		assert.True(t, a.Changes().Dirty(FieldIsVariant))
		assert.True(t, a.IsVariant())
	})
}

func TestAttributeUpdateConfiguration(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("single key update re-validates", func(t *testing.T) {
		a := newSizeAttribute(t, clk)
		a.Changes().Clear()

		require.NoError(t, a.UpdateConfiguration("values", []interface{}{"S", "M", "L", "XL"}))
		assert.NoError(t, a.ValidateValue("XL"))
		assert.True(t, a.Changes().Dirty(FieldConfiguration))
	})

	t.Run("invalid update leaves config untouched", func(t *testing.T) {
		a := newSizeAttribute(t, clk)
		a.Changes().Clear()

		err := a.UpdateConfiguration("values", []interface{}{})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.NoError(t, a.ValidateValue("M"))
		assert.False(t, a.Changes().HasChanges())
	})
}

func TestAttributeReplaceConfiguration(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	a := newSizeAttribute(t, clk)
	a.Changes().Clear()

	require.NoError(t, a.ReplaceConfiguration(map[string]interface{}{
		"values": []interface{}{"One Size"},
	}))

	assert.NoError(t, a.ValidateValue("One Size"))
	assert.ErrorIs(t, a.ValidateValue("M"), ErrInvalidAttributeValue)
	assert.True(t, a.Changes().Dirty(FieldConfiguration))
}

func TestAttributeValidateValue(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	a := newSizeAttribute(t, clk)

	err := a.ValidateValue("XXL")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAttributeValue)
	// The error names the attribute so handlers can point at the bad field.
	assert.Contains(t, err.Error(), "size")
}
