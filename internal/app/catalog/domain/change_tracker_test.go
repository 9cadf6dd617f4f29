package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeTracker(t *testing.T) {
	t.Run("starts clean", func(t *testing.T) {
		ct := NewChangeTracker()
		assert.False(t, ct.HasChanges())
		assert.Empty(t, ct.DirtyFields())
	})

	t.Run("records old and new values", func(t *testing.T) {
		ct := NewChangeTracker()
		ct.Record("name", "Phones", "Smartphones")

		assert.True(t, ct.Dirty("name"))
		assert.Equal(t, FieldChange{Old: "Phones", New: "Smartphones"}, ct.Changes()["name"])
	})

	t.Run("re-recording keeps original old value", func(t *testing.T) {
		ct := NewChangeTracker()
		ct.Record("name", "Phones", "Smartphones")
		ct.Record("name", "Smartphones", "Mobile Phones")

		change := ct.Changes()["name"]
		assert.Equal(t, "Phones", change.Old)
		assert.Equal(t, "Mobile Phones", change.New)
	})

	t.Run("clear resets the tracker", func(t *testing.T) {
		ct := NewChangeTracker()
		ct.Record("name", nil, "Phones")
		ct.Clear()

		assert.False(t, ct.HasChanges())
		assert.False(t, ct.Dirty("name"))
	})

	t.Run("changes returns a copy", func(t *testing.T) {
		ct := NewChangeTracker()
		ct.Record("name", nil, "Phones")

		snapshot := ct.Changes()
		snapshot["slug"] = FieldChange{Old: nil, New: "phones"}

		assert.False(t, ct.Dirty("slug"))
	})
}
