package m_attribute

// Field name constants for the attributes table.
const (
	TableName = "attributes"

	AttributeID   = "attribute_id"
	Name          = "name"
	DisplayName   = "display_name"
	Type          = "type"
	Configuration = "configuration"
	Filterable    = "filterable"
	Searchable    = "searchable"
	IsVariant     = "is_variant"
	Version       = "version"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// AllColumns lists every column in read order.
var AllColumns = []string{
	AttributeID,
	Name,
	DisplayName,
	Type,
	Configuration,
	Filterable,
	Searchable,
	IsVariant,
	Version,
	CreatedAt,
	UpdatedAt,
}
