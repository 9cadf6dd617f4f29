package e2e

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/rename_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_variant_stock"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

// TestConcurrentCategoryRenames runs two renames of the same category at
// once. The version check serializes them: at least one commits, and a loser
// fails with the concurrency sentinel rather than silently overwriting.
func TestConcurrentCategoryRenames(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	categoryID, err := suite.CreateCategory.Execute(ctx(), NewCategoryBuilder().Build())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var err1, err2 error

	wg.Add(2)
	go func() {
		defer wg.Done()
		err1 = suite.RenameCategory.Execute(ctx(), &rename_category.Request{
			CategoryID: categoryID,
			Name:       "Gadgets",
			Slug:       "gadgets",
			Actor:      "writer-1",
		})
	}()
	go func() {
		defer wg.Done()
		err2 = suite.RenameCategory.Execute(ctx(), &rename_category.Request{
			CategoryID: categoryID,
			Name:       "Devices",
			Slug:       "devices",
			Actor:      "writer-2",
		})
	}()
	wg.Wait()

	require.False(t, err1 != nil && err2 != nil,
		"both renames failed: err1=%v err2=%v", err1, err2)

	for _, err := range []error{err1, err2} {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
		}
	}

	// Whatever won, the stored row is one of the two edits, never a blend
	data := testutil.GetCategoryByID(t, suite.Client, categoryID)
	assert.Contains(t, []string{"Gadgets", "Devices"}, data.Name)
	assert.Contains(t, []string{"/gadgets", "/devices"}, data.Path)
}

// TestConcurrentStockUpdates fires several stock writes at one variant.
func TestConcurrentStockUpdates(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	productID, err := suite.CreateProduct.Execute(ctx(), NewProductBuilder().Build())
	require.NoError(t, err)
	variantID, err := suite.CreateVariant.Execute(ctx(),
		NewVariantBuilder(productID).WithSKU("TEE-001-M").Build())
	require.NoError(t, err)

	quantities := []int64{3, 7, 11}
	results := make([]error, len(quantities))

	var wg sync.WaitGroup
	for i, qty := range quantities {
		wg.Add(1)
		go func(idx int, quantity int64) {
			defer wg.Done()
			results[idx] = suite.SetVariantStock.Execute(ctx(), &set_variant_stock.Request{
				VariantID: variantID,
				Quantity:  quantity,
				Actor:     "e2e-test",
			})
		}(i, qty)
	}
	wg.Wait()

	successCount := 0
	for _, err := range results {
		if err == nil {
			successCount++
		} else {
			assert.True(t, errors.Is(err, domain.ErrConcurrencyConflict),
				"unexpected error: %v", err)
		}
	}
	assert.GreaterOrEqual(t, successCount, 1, "at least one stock update should land")

	detail, err := suite.GetProduct.Execute(ctx(), &get_product.Request{ProductID: productID})
	require.NoError(t, err)
	require.Len(t, detail.Variants, 1)
	assert.Contains(t, []int64{3, 7, 11}, detail.Variants[0].StockQuantity)
}

// TestReadDuringWrite polls the product detail while a writer renames it and
// checks every read returns a complete row.
func TestReadDuringWrite(t *testing.T) {
	suite, cleanup := setupTest(t)
	defer cleanup()

	productID, err := suite.CreateProduct.Execute(ctx(), NewProductBuilder().Build())
	require.NoError(t, err)

	stopReading := make(chan struct{})
	var readerWg sync.WaitGroup
	var torn int
	var mu sync.Mutex

	readerWg.Add(1)
	go func() {
		defer readerWg.Done()
		for {
			select {
			case <-stopReading:
				return
			default:
				detail, err := suite.GetProduct.Execute(ctx(), &get_product.Request{ProductID: productID})
				if err == nil && (detail.Name == "" || detail.BasePrice == "") {
					mu.Lock()
					torn++
					mu.Unlock()
				}
				time.Sleep(time.Millisecond)
			}
		}
	}()

	for i := 0; i < 5; i++ {
		req := NewProductBuilder().
			Named("Basic Tee "+string(rune('A'+i)), "basic-tee").
			WithPrice("19.99", "USD").
			Build()
		_ = suite.UpdateProduct.Execute(ctx(), updateRequest(productID, req))
		time.Sleep(2 * time.Millisecond)
	}

	close(stopReading)
	readerWg.Wait()

	assert.Equal(t, 0, torn, "reads must never observe a partial row")
}
