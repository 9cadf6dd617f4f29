package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// Field names for category change tracking
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldParentID    = "parent_id"
	FieldLevel       = "level"
	FieldPath        = "path"
	FieldIsActive    = "is_active"
)

// Category is a node in the catalog's category tree. The ancestor chain is
// materialized in path ("/electronics/phones") so descendant checks are a
// prefix comparison instead of a recursive walk. Reparenting rewrites the
// node's own level and path; the usecase cascades the rewrite to descendants
// in the same commit so stored paths are never stale.
type Category struct {
	id          string
	name        string
	slug        Slug
	description string
	parentID    *string
	level       int64
	path        string
	isActive    bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	clock   clock.Clock
	changes *ChangeTracker
}

// NewCategory creates a root category: level 0, no parent, path "/<slug>".
func NewCategory(id, name string, slug Slug, now time.Time, clk clock.Clock) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if slug.IsZero() {
		return nil, ErrEmptySlug
	}

	c := &Category{
		id:        id,
		name:      name,
		slug:      slug,
		level:     0,
		path:      "/" + slug.String(),
		isActive:  true,
		version:   1,
		createdAt: now,
		updatedAt: now,
		clock:     clk,
		changes:   NewChangeTracker(),
	}

	c.changes.Record(FieldName, nil, name)
	c.changes.Record(FieldSlug, nil, slug.String())
	c.changes.Record(FieldPath, nil, c.path)

	return c, nil
}

// ReconstructCategory rehydrates a Category from storage.
func ReconstructCategory(
	id, name string,
	slug Slug,
	description string,
	parentID *string,
	level int64,
	path string,
	isActive bool,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Category {
	return &Category{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		parentID:    parentID,
		level:       level,
		path:        path,
		isActive:    isActive,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		clock:       clk,
		changes:     NewChangeTracker(),
	}
}

// Getters
func (c *Category) ID() string              { return c.id }
func (c *Category) Name() string            { return c.name }
func (c *Category) Slug() Slug              { return c.slug }
func (c *Category) Description() string     { return c.description }
func (c *Category) ParentID() *string       { return c.parentID }
func (c *Category) Level() int64            { return c.level }
func (c *Category) Path() string            { return c.path }
func (c *Category) IsActive() bool          { return c.isActive }
func (c *Category) IsRoot() bool            { return c.parentID == nil }
func (c *Category) Version() int64          { return c.version }
func (c *Category) CreatedAt() time.Time    { return c.createdAt }
func (c *Category) UpdatedAt() time.Time    { return c.updatedAt }
func (c *Category) Changes() *ChangeTracker { return c.changes }

// IsDescendantOf reports whether c sits below other in the tree.
func (c *Category) IsDescendantOf(other *Category) bool {
	return strings.HasPrefix(c.path, other.path+"/")
}

// SetParent moves the category under parent (nil makes it a root) and
// recomputes level and path. Fails with ErrCircularReference when the target
// is the category itself or one of its descendants.
func (c *Category) SetParent(parent *Category) error {
	if parent == nil {
		return c.applyHierarchy(nil, 0, "/"+c.slug.String())
	}
	if parent.id == c.id {
		return ErrCircularReference
	}
	if parent.IsDescendantOf(c) {
		return ErrCircularReference
	}
	return c.applyHierarchy(&parent.id, parent.level+1, parent.path+"/"+c.slug.String())
}

// Rename changes the display name and slug. Slug uniqueness across all
// categories (excluding self) is probed by the caller; an empty slug fails
// here. The materialized path is rebased onto the new slug.
func (c *Category) Rename(name string, slug Slug) error {
	if name == "" {
		return ErrEmptyName
	}
	if slug.IsZero() {
		return ErrEmptySlug
	}

	if c.name != name {
		c.changes.Record(FieldName, c.name, name)
		c.name = name
	}
	if !c.slug.Equals(slug) {
		c.changes.Record(FieldSlug, c.slug.String(), slug.String())
		c.slug = slug

		newPath := parentPath(c.path) + "/" + slug.String()
		c.changes.Record(FieldPath, c.path, newPath)
		c.path = newPath
	}
	c.touch()
	return nil
}

// RebasePath rewrites level and path after an ancestor moved or was
// renamed. oldPrefix is the ancestor's previous path and must still prefix
// this category's path.
func (c *Category) RebasePath(oldPrefix, newPrefix string, levelDelta int64) error {
	if !strings.HasPrefix(c.path, oldPrefix+"/") {
		return fmt.Errorf("category %s path %q is not under %q", c.id, c.path, oldPrefix)
	}

	newPath := newPrefix + strings.TrimPrefix(c.path, oldPrefix)
	if newPath != c.path {
		c.changes.Record(FieldPath, c.path, newPath)
		c.path = newPath
	}
	if levelDelta != 0 {
		c.changes.Record(FieldLevel, c.level, c.level+levelDelta)
		c.level += levelDelta
	}
	c.touch()
	return nil
}

// SetDescription updates the free-form description.
func (c *Category) SetDescription(description string) {
	if c.description == description {
		return
	}
	c.changes.Record(FieldDescription, c.description, description)
	c.description = description
	c.touch()
}

// SetActive toggles visibility. Setting the current state is a no-op
// success, not an error.
func (c *Category) SetActive(active bool) {
	if c.isActive == active {
		return
	}
	c.changes.Record(FieldIsActive, c.isActive, active)
	c.isActive = active
	c.touch()
}

func (c *Category) applyHierarchy(parentID *string, level int64, path string) error {
	oldParent := ""
	if c.parentID != nil {
		oldParent = *c.parentID
	}
	newParent := ""
	if parentID != nil {
		newParent = *parentID
	}
	if oldParent != newParent {
		c.changes.Record(FieldParentID, c.parentID, parentID)
	}
	if c.level != level {
		c.changes.Record(FieldLevel, c.level, level)
	}
	if c.path != path {
		c.changes.Record(FieldPath, c.path, path)
	}
	c.parentID = parentID
	c.level = level
	c.path = path
	c.touch()
	return nil
}

func (c *Category) touch() {
	c.updatedAt = c.clock.Now()
}

// parentPath strips the last path segment: "/a/b/c" → "/a/b", "/a" → "".
func parentPath(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return ""
	}
	return path[:idx]
}
