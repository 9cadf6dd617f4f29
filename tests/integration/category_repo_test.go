//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

func newCategory(t *testing.T, id, name, slug string, clk clock.Clock) *domain.Category {
	t.Helper()
	s, err := domain.NewSlug(slug)
	require.NoError(t, err)
	c, err := domain.NewCategory(id, name, s, clk.Now(), clk)
	require.NoError(t, err)
	return c
}

func TestCategoryRepository_InsertAndGet(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	category := newCategory(t, "cat-1", "Electronics", "electronics", clk)
	category.SetDescription("Gadgets and devices")

	_, err := client.Apply(ctx, []*spanner.Mutation{repository.InsertMut(category)})
	require.NoError(t, err)

	retrieved, err := repository.GetByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", retrieved.Name())
	assert.Equal(t, "electronics", retrieved.Slug().String())
	assert.Equal(t, "/electronics", retrieved.Path())
	assert.Equal(t, "Gadgets and devices", retrieved.Description())
	assert.True(t, retrieved.IsRoot())
	assert.Equal(t, int64(1), retrieved.Version())
}

func TestCategoryRepository_GetByID_NotFound(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	_, err := repository.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRepository_UpdateMut(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	category := newCategory(t, "cat-1", "Electronics", "electronics", clk)
	_, err := client.Apply(ctx, []*spanner.Mutation{repository.InsertMut(category)})
	require.NoError(t, err)

	retrieved, err := repository.GetByID(ctx, "cat-1")
	require.NoError(t, err)

	slug, err := domain.NewSlug("devices")
	require.NoError(t, err)
	require.NoError(t, retrieved.Rename("Devices", slug))

	updateMut := repository.UpdateMut(retrieved)
	require.NotNil(t, updateMut)
	_, err = client.Apply(ctx, []*spanner.Mutation{updateMut})
	require.NoError(t, err)

	final, err := repository.GetByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Devices", final.Name())
	assert.Equal(t, "/devices", final.Path())
	// The version column increments with every update mutation.
	assert.Equal(t, int64(2), final.Version())
}

func TestCategoryRepository_UpdateMut_NoChanges(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	category := newCategory(t, "cat-1", "Electronics", "electronics", clk)
	_, err := client.Apply(ctx, []*spanner.Mutation{repository.InsertMut(category)})
	require.NoError(t, err)

	retrieved, err := repository.GetByID(ctx, "cat-1")
	require.NoError(t, err)

	assert.Nil(t, repository.UpdateMut(retrieved), "expected nil mutation when no fields are dirty")
}

func TestCategoryRepository_SlugExists(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	testutil.CreateTestCategory(t, client, "Electronics", "electronics")

	taken, err := repository.SlugExists(ctx, "electronics", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repository.SlugExists(ctx, "clothing", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestCategoryRepository_SlugExists_ExcludesSelf(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	categoryID := testutil.CreateTestCategory(t, client, "Electronics", "electronics")

	taken, err := repository.SlugExists(ctx, "electronics", categoryID)
	require.NoError(t, err)
	assert.False(t, taken, "the category's own slug must not count as taken")
}

func TestCategoryRepository_HasChildren(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	parentID := testutil.CreateTestCategory(t, client, "Electronics", "electronics")
	testutil.CreateTestChildCategory(t, client, "Phones", "phones", parentID, "/electronics", 0)

	hasChildren, err := repository.HasChildren(ctx, parentID)
	require.NoError(t, err)
	assert.True(t, hasChildren)

	leafID := testutil.CreateTestCategory(t, client, "Clothing", "clothing")
	hasChildren, err = repository.HasChildren(ctx, leafID)
	require.NoError(t, err)
	assert.False(t, hasChildren)
}

func TestCategoryRepository_ListByPathPrefix(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewCategoryRepo(client, clk)

	rootID := testutil.CreateTestCategory(t, client, "Electronics", "electronics")
	phonesID := testutil.CreateTestChildCategory(t, client, "Phones", "phones", rootID, "/electronics", 0)
	testutil.CreateTestChildCategory(t, client, "Smartphones", "smartphones", phonesID, "/electronics/phones", 1)
	testutil.CreateTestCategory(t, client, "Clothing", "clothing")

	descendants, err := repository.ListByPathPrefix(ctx, "/electronics/")
	require.NoError(t, err)
	require.Len(t, descendants, 2)

	// Ordered by path, parents before children.
	assert.Equal(t, "/electronics/phones", descendants[0].Path())
	assert.Equal(t, "/electronics/phones/smartphones", descendants[1].Path())
}
