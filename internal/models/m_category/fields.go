package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	CategoryID  = "category_id"
	Name        = "name"
	Slug        = "slug"
	Description = "description"
	ParentID    = "parent_id"
	Level       = "level"
	Path        = "path"
	IsActive    = "is_active"
	Version     = "version"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// AllColumns lists every column in read order.
var AllColumns = []string{
	CategoryID,
	Name,
	Slug,
	Description,
	ParentID,
	Level,
	Path,
	IsActive,
	Version,
	CreatedAt,
	UpdatedAt,
}
