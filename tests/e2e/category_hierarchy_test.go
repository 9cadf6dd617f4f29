package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/rename_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/reparent_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_category_status"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

// buildTestTree creates electronics > phones > smartphones plus a clothing
// root and returns the four category ids.
func buildTestTree(t *testing.T, suite *Services) (electronics, phones, smartphones, clothing string) {
	t.Helper()

	var err error
	electronics, err = suite.CreateCategory.Execute(ctx(), NewCategoryBuilder().Build())
	require.NoError(t, err)

	phones, err = suite.CreateCategory.Execute(ctx(),
		NewCategoryBuilder().Named("Phones", "phones").Under(electronics).Build())
	require.NoError(t, err)

	smartphones, err = suite.CreateCategory.Execute(ctx(),
		NewCategoryBuilder().Named("Smartphones", "smartphones").Under(phones).Build())
	require.NoError(t, err)

	clothing, err = suite.CreateCategory.Execute(ctx(),
		NewCategoryBuilder().Named("Clothing", "clothing").Build())
	require.NoError(t, err)

	return electronics, phones, smartphones, clothing
}

func TestCategoryHierarchy_CreateAndTree(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	electronics, phones, smartphones, _ := buildTestTree(t, suite)

	// Stored paths follow the parent chain
	data := testutil.GetCategoryByID(t, suite.Client, smartphones)
	assert.Equal(t, "/electronics/phones/smartphones", data.Path)
	assert.Equal(t, int64(2), data.Level)
	assert.Equal(t, int64(1), data.Version)

	// The tree query nests children under their parents, roots name-sorted
	tree, err := suite.CategoryTree.Execute(ctx())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Clothing", tree[0].Name)
	assert.Equal(t, "Electronics", tree[1].Name)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, phones, tree[1].Children[0].CategoryID)
	require.Len(t, tree[1].Children[0].Children, 1)
	assert.Equal(t, smartphones, tree[1].Children[0].Children[0].CategoryID)

	testutil.AssertAuditEntry(t, suite.Client, electronics, "created")
}

func TestCategoryHierarchy_DuplicateSlug(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	_, err := suite.CreateCategory.Execute(ctx(), NewCategoryBuilder().Build())
	require.NoError(t, err)

	_, err = suite.CreateCategory.Execute(ctx(),
		NewCategoryBuilder().Named("Electronics Again", "electronics").Build())
	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestCategoryRename_CascadesPaths(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	_, phones, smartphones, _ := buildTestTree(t, suite)

	err := suite.RenameCategory.Execute(ctx(), &rename_category.Request{
		CategoryID: phones,
		Name:       "Mobile Phones",
		Slug:       "mobile-phones",
		Actor:      "e2e-test",
	})
	require.NoError(t, err)

	// The renamed node and its whole subtree carry the new path segment
	renamed := testutil.GetCategoryByID(t, suite.Client, phones)
	assert.Equal(t, "Mobile Phones", renamed.Name)
	assert.Equal(t, "/electronics/mobile-phones", renamed.Path)
	assert.Equal(t, int64(2), renamed.Version)

	child := testutil.GetCategoryByID(t, suite.Client, smartphones)
	assert.Equal(t, "/electronics/mobile-phones/smartphones", child.Path)
	assert.Equal(t, int64(2), child.Level)

	testutil.AssertAuditEntry(t, suite.Client, phones, "renamed")
	testutil.AssertAuditEntry(t, suite.Client, smartphones, "path_rebased")
}

func TestCategoryReparent_CascadesSubtree(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	_, phones, smartphones, clothing := buildTestTree(t, suite)

	// Move phones (and its subtree) under clothing
	err := suite.ReparentCategory.Execute(ctx(), &reparent_category.Request{
		CategoryID:  phones,
		NewParentID: &clothing,
		Actor:       "e2e-test",
	})
	require.NoError(t, err)

	moved := testutil.GetCategoryByID(t, suite.Client, phones)
	assert.Equal(t, "/clothing/phones", moved.Path)
	assert.Equal(t, int64(1), moved.Level)

	child := testutil.GetCategoryByID(t, suite.Client, smartphones)
	assert.Equal(t, "/clothing/phones/smartphones", child.Path)
	assert.Equal(t, int64(2), child.Level)

	testutil.AssertAuditEntry(t, suite.Client, phones, "reparented")
	testutil.AssertAuditEntry(t, suite.Client, smartphones, "path_rebased")

	// Promote phones to a root
	err = suite.ReparentCategory.Execute(ctx(), &reparent_category.Request{
		CategoryID:  phones,
		NewParentID: nil,
		Actor:       "e2e-test",
	})
	require.NoError(t, err)

	promoted := testutil.GetCategoryByID(t, suite.Client, phones)
	assert.Equal(t, "/phones", promoted.Path)
	assert.Equal(t, int64(0), promoted.Level)

	grandchild := testutil.GetCategoryByID(t, suite.Client, smartphones)
	assert.Equal(t, "/phones/smartphones", grandchild.Path)
	assert.Equal(t, int64(1), grandchild.Level)
}

func TestCategoryReparent_RejectsCycles(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	electronics, phones, smartphones, _ := buildTestTree(t, suite)

	t.Run("own descendant", func(t *testing.T) {
		err := suite.ReparentCategory.Execute(ctx(), &reparent_category.Request{
			CategoryID:  electronics,
			NewParentID: &smartphones,
			Actor:       "e2e-test",
		})
		assert.ErrorIs(t, err, domain.ErrCircularReference)
	})

	t.Run("self", func(t *testing.T) {
		err := suite.ReparentCategory.Execute(ctx(), &reparent_category.Request{
			CategoryID:  phones,
			NewParentID: &phones,
			Actor:       "e2e-test",
		})
		assert.ErrorIs(t, err, domain.ErrCircularReference)
	})

	// The failed moves must not have touched the stored hierarchy
	data := testutil.GetCategoryByID(t, suite.Client, electronics)
	assert.Equal(t, "/electronics", data.Path)
	assert.Equal(t, int64(0), data.Level)
}

func TestCategoryDelete_Guards(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	electronics, _, smartphones, clothing := buildTestTree(t, suite)

	t.Run("with children", func(t *testing.T) {
		err := suite.DeleteCategory.Execute(ctx(), &delete_category.Request{
			CategoryID: electronics,
			Actor:      "e2e-test",
		})
		assert.ErrorIs(t, err, domain.ErrCannotDeleteWithChildren)
	})

	t.Run("with products", func(t *testing.T) {
		productID, err := suite.CreateProduct.Execute(ctx(), NewProductBuilder().Build())
		require.NoError(t, err)
		require.NoError(t, suite.AssignProductCategory.Execute(ctx(), assignCategories(productID, clothing)))

		err = suite.DeleteCategory.Execute(ctx(), &delete_category.Request{
			CategoryID: clothing,
			Actor:      "e2e-test",
		})
		assert.ErrorIs(t, err, domain.ErrCannotDeleteWithProducts)
	})

	t.Run("empty leaf", func(t *testing.T) {
		err := suite.DeleteCategory.Execute(ctx(), &delete_category.Request{
			CategoryID: smartphones,
			Actor:      "e2e-test",
		})
		require.NoError(t, err)
		testutil.AssertAuditEntry(t, suite.Client, smartphones, "deleted")

		// A second delete finds nothing
		err = suite.DeleteCategory.Execute(ctx(), &delete_category.Request{
			CategoryID: smartphones,
			Actor:      "e2e-test",
		})
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestCategoryStatus_Toggle(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	electronics, err := suite.CreateCategory.Execute(ctx(), NewCategoryBuilder().Build())
	require.NoError(t, err)

	err = suite.SetCategoryStatus.Execute(ctx(), &set_category_status.Request{
		CategoryID: electronics,
		Active:     false,
		Actor:      "e2e-test",
	})
	require.NoError(t, err)

	data := testutil.GetCategoryByID(t, suite.Client, electronics)
	assert.False(t, data.IsActive)
	testutil.AssertAuditEntry(t, suite.Client, electronics, "status_changed")

	// Deactivating an already inactive category is a no-op: no new version,
	// no new audit entry
	err = suite.SetCategoryStatus.Execute(ctx(), &set_category_status.Request{
		CategoryID: electronics,
		Active:     false,
		Actor:      "e2e-test",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), testutil.GetCategoryByID(t, suite.Client, electronics).Version)
}
