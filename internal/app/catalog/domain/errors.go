package domain

import "errors"

// Domain errors as sentinel values. Handlers map these to stable error codes;
// everything not in this list is treated as an infrastructure failure.
var (
	// Lookup errors
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrVariantNotFound   = errors.New("variant not found")

	// Uniqueness errors (raised after a repository probe, never in-memory)
	ErrDuplicateSlug = errors.New("slug is already in use")
	ErrDuplicateSKU  = errors.New("sku is already in use")
	ErrDuplicateName = errors.New("name is already in use")

	// Category hierarchy errors
	ErrCircularReference        = errors.New("category cannot become its own ancestor")
	ErrCannotDeleteWithChildren = errors.New("category has child categories")
	ErrCannotDeleteWithProducts = errors.New("category has products assigned")

	// Attribute errors
	ErrNotVariantAttribute   = errors.New("attribute is not flagged for variant use")
	ErrInvalidConfiguration  = errors.New("invalid attribute configuration")
	ErrInvalidAttributeValue = errors.New("value does not match attribute type")
	ErrAttributeInUse        = errors.New("attribute is referenced by products")

	// Variant errors
	ErrDuplicateCombination = errors.New("variant attribute combination already exists")
	ErrNegativeStock        = errors.New("stock quantity cannot be negative")

	// Value object errors
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptySlug        = errors.New("slug cannot be empty")
	ErrInvalidSlug      = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// Concurrency
	ErrConcurrencyConflict = errors.New("aggregate was modified concurrently")
)
