package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/models/m_attribute"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/models/m_variant"
)

// CreateTestCategory creates a root category directly in the database.
func CreateTestCategory(t *testing.T, client *spanner.Client, name, slug string) string {
	t.Helper()

	ctx := context.Background()
	categoryID := uuid.New().String()
	now := time.Now()

	model := m_category.NewModel()
	data := &m_category.Data{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		Level:      0,
		Path:       "/" + slug,
		IsActive:   true,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test category")

	return categoryID
}

// CreateTestChildCategory creates a category nested under an existing parent.
func CreateTestChildCategory(t *testing.T, client *spanner.Client, name, slug, parentID, parentPath string, parentLevel int64) string {
	t.Helper()

	ctx := context.Background()
	categoryID := uuid.New().String()
	now := time.Now()

	model := m_category.NewModel()
	data := &m_category.Data{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		ParentID:   spanner.NullString{StringVal: parentID, Valid: true},
		Level:      parentLevel + 1,
		Path:       parentPath + "/" + slug,
		IsActive:   true,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test child category")

	return categoryID
}

// CreateTestAttribute creates an attribute directly in the database.
func CreateTestAttribute(t *testing.T, client *spanner.Client, name, attrType string, config map[string]interface{}, isVariant bool) string {
	t.Helper()

	ctx := context.Background()
	attributeID := uuid.New().String()
	now := time.Now()

	model := m_attribute.NewModel()
	data := &m_attribute.Data{
		AttributeID:   attributeID,
		Name:          name,
		DisplayName:   name,
		Type:          attrType,
		Configuration: spanner.NullJSON{Value: config, Valid: config != nil},
		IsVariant:     isVariant,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test attribute")

	return attributeID
}

// CreateTestProduct creates a product directly in the database with a
// 19.99 USD base price.
func CreateTestProduct(t *testing.T, client *spanner.Client, name, slug string) string {
	t.Helper()

	ctx := context.Background()
	productID := uuid.New().String()
	now := time.Now()

	model := m_product.NewModel()
	data := &m_product.Data{
		ProductID: productID,
		Name:      name,
		Slug:      slug,
		BasePrice: spanner.NullNumeric{Numeric: *big.NewRat(1999, 100), Valid: true},
		Currency:  "USD",
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test product")

	return productID
}

// CreateTestProductInCategory creates a product assigned to a category.
func CreateTestProductInCategory(t *testing.T, client *spanner.Client, name, slug, categoryID string) string {
	t.Helper()

	ctx := context.Background()
	productID := uuid.New().String()
	now := time.Now()

	model := m_product.NewModel()
	data := &m_product.Data{
		ProductID:  productID,
		Name:       name,
		Slug:       slug,
		BasePrice:  spanner.NullNumeric{Numeric: *big.NewRat(1999, 100), Valid: true},
		Currency:   "USD",
		IsActive:   true,
		Categories: spanner.NullJSON{Value: []string{categoryID}, Valid: true},
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test product in category")

	return productID
}

// CreateTestVariant creates a variant directly in the database. A nil price
// leaves the price columns NULL so the read side inherits the base price.
func CreateTestVariant(t *testing.T, client *spanner.Client, productID, sku string, price *big.Rat) string {
	t.Helper()

	ctx := context.Background()
	variantID := uuid.New().String()
	now := time.Now()

	data := &m_variant.Data{
		VariantID:     variantID,
		ProductID:     productID,
		SKU:           sku,
		StockQuantity: 5,
		IsActive:      true,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if price != nil {
		data.Price = spanner.NullNumeric{Numeric: *price, Valid: true}
		data.Currency = spanner.NullString{StringVal: "USD", Valid: true}
	}

	model := m_variant.NewModel()
	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test variant")

	return variantID
}

// GetCategoryByID retrieves a category row for verification.
func GetCategoryByID(t *testing.T, client *spanner.Client, categoryID string) *m_category.Data {
	t.Helper()

	ctx := context.Background()
	row, err := client.Single().ReadRow(ctx, m_category.TableName, spanner.Key{categoryID}, m_category.AllColumns)
	require.NoError(t, err, "failed to get category by id")

	var data m_category.Data
	err = row.ToStruct(&data)
	require.NoError(t, err, "failed to parse category data")

	return &data
}

// GetProductByID retrieves a product row for verification.
func GetProductByID(t *testing.T, client *spanner.Client, productID string) *m_product.Data {
	t.Helper()

	ctx := context.Background()
	row, err := client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.AllColumns)
	require.NoError(t, err, "failed to get product by id")

	var data m_product.Data
	err = row.ToStruct(&data)
	require.NoError(t, err, "failed to parse product data")

	return &data
}

// AssertAuditEntry verifies an audit entry exists for the aggregate/action.
func AssertAuditEntry(t *testing.T, client *spanner.Client, aggregateID, action string) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL: "SELECT entry_id FROM audit_entries WHERE aggregate_id = @aggregateID AND action = @action",
		Params: map[string]interface{}{
			"aggregateID": aggregateID,
			"action":      action,
		},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "audit entry not found for %s/%s", aggregateID, action)
	require.NotNil(t, row)
}

// AssertAuditEntryCount verifies how many audit entries an aggregate has.
func AssertAuditEntryCount(t *testing.T, client *spanner.Client, aggregateID string, expectedCount int) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM audit_entries WHERE aggregate_id = @aggregateID",
		Params: map[string]interface{}{"aggregateID": aggregateID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query audit entry count")

	var count int64
	err = row.Columns(&count)
	require.NoError(t, err, "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected audit entry count for %s", aggregateID)
}
