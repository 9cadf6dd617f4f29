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

func TestVariantRepository_InsertAndGet(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewVariantRepo(client, clk)

	productID := testutil.CreateTestProduct(t, client, "Basic Tee", "basic-tee")

	variant, err := domain.NewProductVariant("var-1", productID, "TEE-001-M", domain.MustMoney("21.99", "USD"), 10, clk.Now(), clk)
	require.NoError(t, err)
	variant.SetAttributeValue("attr-size", "M")
	variant.SetMetadata("barcode", "4006381333931")

	insertMut, err := repository.InsertMut(variant)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{insertMut})
	require.NoError(t, err)

	retrieved, err := repository.GetByID(ctx, "var-1")
	require.NoError(t, err)
	assert.Equal(t, productID, retrieved.ProductID())
	assert.Equal(t, "TEE-001-M", retrieved.SKU())
	assert.Equal(t, "21.99 USD", retrieved.Price().String())
	assert.Equal(t, int64(10), retrieved.StockQuantity())
	assert.Equal(t, "M", retrieved.AttributeValues()["attr-size"])
	assert.Equal(t, "4006381333931", retrieved.Metadata()["barcode"])
}

func TestVariantRepository_NullPriceRoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewVariantRepo(client, clk)

	productID := testutil.CreateTestProduct(t, client, "Basic Tee", "basic-tee")
	variantID := testutil.CreateTestVariant(t, client, productID, "TEE-001-L", nil)

	retrieved, err := repository.GetByID(ctx, variantID)
	require.NoError(t, err)
	assert.Nil(t, retrieved.Price())
}

func TestVariantRepository_GetByID_NotFound(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	clk := clock.NewMockClock(time.Now())
	repository := repo.NewVariantRepo(client, clk)

	_, err := repository.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestVariantRepository_UpdateMut(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewVariantRepo(client, clk)

	productID := testutil.CreateTestProduct(t, client, "Basic Tee", "basic-tee")
	variantID := testutil.CreateTestVariant(t, client, productID, "TEE-001-M", nil)

	retrieved, err := repository.GetByID(ctx, variantID)
	require.NoError(t, err)

	require.NoError(t, retrieved.SetPrice(domain.MustMoney("24.99", "USD")))
	require.NoError(t, retrieved.SetStockQuantity(3))

	updateMut, err := repository.UpdateMut(retrieved)
	require.NoError(t, err)
	require.NotNil(t, updateMut)
	_, err = client.Apply(ctx, []*spanner.Mutation{updateMut})
	require.NoError(t, err)

	final, err := repository.GetByID(ctx, variantID)
	require.NoError(t, err)
	assert.Equal(t, "24.99 USD", final.Price().String())
	assert.Equal(t, int64(3), final.StockQuantity())
	assert.Equal(t, int64(2), final.Version())
}

func TestVariantRepository_ListByProduct(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewVariantRepo(client, clk)

	productID := testutil.CreateTestProduct(t, client, "Basic Tee", "basic-tee")
	otherID := testutil.CreateTestProduct(t, client, "Hoodie", "hoodie")
	testutil.CreateTestVariant(t, client, productID, "TEE-001-M", nil)
	testutil.CreateTestVariant(t, client, productID, "TEE-001-L", nil)
	testutil.CreateTestVariant(t, client, otherID, "HOOD-001", nil)

	variants, err := repository.ListByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Len(t, variants, 2)
	for _, v := range variants {
		assert.Equal(t, productID, v.ProductID())
	}
}

func TestVariantRepository_SKUExists(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	repository := repo.NewVariantRepo(client, clk)

	productID := testutil.CreateTestProduct(t, client, "Basic Tee", "basic-tee")
	variantID := testutil.CreateTestVariant(t, client, productID, "TEE-001-M", nil)

	taken, err := repository.SKUExists(ctx, "TEE-001-M", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repository.SKUExists(ctx, "TEE-001-M", variantID)
	require.NoError(t, err)
	assert.False(t, taken, "the variant's own sku must not count as taken")
}
