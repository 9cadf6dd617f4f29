package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

func mustSlug(t *testing.T, raw string) Slug {
	t.Helper()
	s, err := NewSlug(raw)
	require.NoError(t, err)
	return s
}

func newTestCategory(t *testing.T, id, name, slug string, clk clock.Clock) *Category {
	t.Helper()
	c, err := NewCategory(id, name, mustSlug(t, slug), clk.Now(), clk)
	require.NoError(t, err)
	return c
}

func TestNewCategory(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("root category", func(t *testing.T) {
		c, err := NewCategory("cat-1", "Electronics", mustSlug(t, "electronics"), clk.Now(), clk)
		require.NoError(t, err)

		assert.Equal(t, "Electronics", c.Name())
		assert.Equal(t, "/electronics", c.Path())
		assert.Equal(t, int64(0), c.Level())
		assert.True(t, c.IsRoot())
		assert.True(t, c.IsActive())
		assert.Equal(t, int64(1), c.Version())
		assert.True(t, c.Changes().HasChanges())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewCategory("cat-1", "", mustSlug(t, "electronics"), clk.Now(), clk)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("zero slug rejected", func(t *testing.T) {
		_, err := NewCategory("cat-1", "Electronics", Slug{}, clk.Now(), clk)
		assert.ErrorIs(t, err, ErrEmptySlug)
	})
}

func TestCategorySetParent(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("nesting under a parent", func(t *testing.T) {
		electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)

		require.NoError(t, phones.SetParent(electronics))

		assert.Equal(t, "/electronics/phones", phones.Path())
		assert.Equal(t, int64(1), phones.Level())
		require.NotNil(t, phones.ParentID())
		assert.Equal(t, "cat-1", *phones.ParentID())
		assert.False(t, phones.IsRoot())
	})

	t.Run("moving to root", func(t *testing.T) {
		electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		require.NoError(t, phones.SetParent(electronics))

		require.NoError(t, phones.SetParent(nil))

		assert.Equal(t, "/phones", phones.Path())
		assert.Equal(t, int64(0), phones.Level())
		assert.True(t, phones.IsRoot())
	})

	t.Run("self as parent rejected", func(t *testing.T) {
		electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)

		err := electronics.SetParent(electronics)
		assert.ErrorIs(t, err, ErrCircularReference)
	})

	t.Run("descendant as parent rejected", func(t *testing.T) {
		electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		smartphones := newTestCategory(t, "cat-3", "Smartphones", "smartphones", clk)
		require.NoError(t, phones.SetParent(electronics))
		require.NoError(t, smartphones.SetParent(phones))

		err := electronics.SetParent(smartphones)
		assert.ErrorIs(t, err, ErrCircularReference)

		// The failed move leaves the hierarchy untouched.
		assert.Equal(t, "/electronics", electronics.Path())
		assert.True(t, electronics.IsRoot())
	})

	t.Run("records hierarchy changes", func(t *testing.T) {
		electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		phones.Changes().Clear()

		require.NoError(t, phones.SetParent(electronics))

		assert.True(t, phones.Changes().Dirty(FieldParentID))
		assert.True(t, phones.Changes().Dirty(FieldLevel))
		assert.True(t, phones.Changes().Dirty(FieldPath))
	})
}

func TestCategoryIsDescendantOf(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
	phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
	electrical := newTestCategory(t, "cat-3", "Electrical", "electronics-spares", clk)
	require.NoError(t, phones.SetParent(electronics))

	assert.True(t, phones.IsDescendantOf(electronics))
	assert.False(t, electronics.IsDescendantOf(phones))
	assert.False(t, electronics.IsDescendantOf(electronics))
	// Prefix of the slug text is not an ancestor relation.
	assert.False(t, electrical.IsDescendantOf(electronics))
}

func TestCategoryRename(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("name and slug change rebases own path", func(t *testing.T) {
		electronics := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		require.NoError(t, phones.SetParent(electronics))
		phones.Changes().Clear()

		require.NoError(t, phones.Rename("Smartphones", mustSlug(t, "smartphones")))

		assert.Equal(t, "Smartphones", phones.Name())
		assert.Equal(t, "/electronics/smartphones", phones.Path())
		assert.True(t, phones.Changes().Dirty(FieldName))
		assert.True(t, phones.Changes().Dirty(FieldSlug))
		assert.True(t, phones.Changes().Dirty(FieldPath))
	})

	t.Run("same slug keeps path", func(t *testing.T) {
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		phones.Changes().Clear()

		require.NoError(t, phones.Rename("Mobile Phones", mustSlug(t, "phones")))

		assert.Equal(t, "/phones", phones.Path())
		assert.True(t, phones.Changes().Dirty(FieldName))
		assert.False(t, phones.Changes().Dirty(FieldPath))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		assert.ErrorIs(t, phones.Rename("", mustSlug(t, "phones")), ErrEmptyName)
	})

	t.Run("zero slug rejected", func(t *testing.T) {
		phones := newTestCategory(t, "cat-2", "Phones", "phones", clk)
		assert.ErrorIs(t, phones.Rename("Phones", Slug{}), ErrEmptySlug)
	})
}

func TestCategoryRebasePath(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	build := func(t *testing.T) *Category {
		return ReconstructCategory(
			"cat-3", "Smartphones", mustSlug(t, "smartphones"), "",
			stringRef("cat-2"), 2, "/electronics/phones/smartphones",
			true, 3, clk.Now(), clk.Now(), clk,
		)
	}

	t.Run("ancestor moved deeper", func(t *testing.T) {
		c := build(t)

		require.NoError(t, c.RebasePath("/electronics/phones", "/devices/mobile/phones", 1))

		assert.Equal(t, "/devices/mobile/phones/smartphones", c.Path())
		assert.Equal(t, int64(3), c.Level())
		assert.True(t, c.Changes().Dirty(FieldPath))
		assert.True(t, c.Changes().Dirty(FieldLevel))
	})

	t.Run("ancestor renamed in place", func(t *testing.T) {
		c := build(t)

		require.NoError(t, c.RebasePath("/electronics/phones", "/electronics/mobiles", 0))

		assert.Equal(t, "/electronics/mobiles/smartphones", c.Path())
		assert.Equal(t, int64(2), c.Level())
		assert.False(t, c.Changes().Dirty(FieldLevel))
	})

	t.Run("ancestor promoted to root", func(t *testing.T) {
		c := build(t)

		require.NoError(t, c.RebasePath("/electronics/phones", "/phones", -1))

		assert.Equal(t, "/phones/smartphones", c.Path())
		assert.Equal(t, int64(1), c.Level())
	})

	t.Run("wrong prefix rejected", func(t *testing.T) {
		c := build(t)
		assert.Error(t, c.RebasePath("/clothing", "/apparel", 0))
	})
}

func TestCategorySetActive(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	c := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
	c.Changes().Clear()

	t.Run("setting current state is a no-op", func(t *testing.T) {
		c.SetActive(true)
		assert.False(t, c.Changes().HasChanges())
	})

	t.Run("deactivating records the change", func(t *testing.T) {
		c.SetActive(false)
		assert.False(t, c.IsActive())
		assert.Equal(t, FieldChange{Old: true, New: false}, c.Changes().Changes()[FieldIsActive])
	})
}

func TestCategorySetDescription(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	c := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)
	c.Changes().Clear()

	c.SetDescription("Gadgets and devices")
	assert.Equal(t, "Gadgets and devices", c.Description())
	assert.True(t, c.Changes().Dirty(FieldDescription))

	c.Changes().Clear()
	c.SetDescription("Gadgets and devices")
	assert.False(t, c.Changes().HasChanges())
}

func TestCategoryTouchUsesClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	c := newTestCategory(t, "cat-1", "Electronics", "electronics", clk)

	clk.Advance(time.Hour)
	c.SetDescription("updated")

	assert.Equal(t, start.Add(time.Hour), c.UpdatedAt())
	assert.Equal(t, start, c.CreatedAt())
}

func stringRef(s string) *string { return &s }
