package e2e

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/category_tree"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_attributes"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/add_variant_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/assign_product_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/assign_product_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_variant"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/rename_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/reparent_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_category_status"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_product_status"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_variant_status"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_variant_stock"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_variant_price"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

// Services holds all use cases and queries for E2E tests.
type Services struct {
	// Category commands
	CreateCategory    *create_category.Interactor
	RenameCategory    *rename_category.Interactor
	ReparentCategory  *reparent_category.Interactor
	SetCategoryStatus *set_category_status.Interactor
	DeleteCategory    *delete_category.Interactor

	// Attribute commands
	CreateAttribute *create_attribute.Interactor
	UpdateAttribute *update_attribute.Interactor
	DeleteAttribute *delete_attribute.Interactor

	// Product commands
	CreateProduct          *create_product.Interactor
	UpdateProduct          *update_product.Interactor
	SetProductStatus       *set_product_status.Interactor
	AssignProductAttribute *assign_product_attribute.Interactor
	AssignProductCategory  *assign_product_category.Interactor

	// Variant commands
	CreateVariant       *create_variant.Interactor
	AddVariantAttribute *add_variant_attribute.Interactor
	UpdateVariantPrice  *update_variant_price.Interactor
	SetVariantStock     *set_variant_stock.Interactor
	SetVariantStatus    *set_variant_status.Interactor

	// Queries
	ListCategories *list_categories.Query
	ListAttributes *list_attributes.Query
	ListProducts   *list_products.Query
	CategoryTree   *category_tree.Query
	GetProduct     *get_product.Query

	// Infrastructure
	Clock  clock.Clock
	Client *spanner.Client
}

// setupTest initializes all dependencies for E2E testing.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	// Setup Spanner client with clean database
	client, cleanup := testutil.SetupSpannerTest(t)

	// Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(client)
	cache := repo.NopTreeCache{}

	// Create repositories
	categoryRepo := repo.NewCategoryRepo(client, clk)
	attributeRepo := repo.NewAttributeRepo(client, clk)
	productRepo := repo.NewProductRepo(client, clk)
	variantRepo := repo.NewVariantRepo(client, clk)
	auditRepo := repo.NewAuditRepo()
	readModel := repo.NewReadModel(client, cache)

	services := &Services{
		CreateCategory:    create_category.NewInteractor(categoryRepo, auditRepo, comm, cache, clk),
		RenameCategory:    rename_category.NewInteractor(categoryRepo, auditRepo, comm, cache, clk),
		ReparentCategory:  reparent_category.NewInteractor(categoryRepo, auditRepo, comm, cache, clk),
		SetCategoryStatus: set_category_status.NewInteractor(categoryRepo, auditRepo, comm, cache, clk),
		DeleteCategory:    delete_category.NewInteractor(categoryRepo, productRepo, auditRepo, comm, cache, clk),

		CreateAttribute: create_attribute.NewInteractor(attributeRepo, auditRepo, comm, clk),
		UpdateAttribute: update_attribute.NewInteractor(attributeRepo, auditRepo, comm, clk),
		DeleteAttribute: delete_attribute.NewInteractor(attributeRepo, productRepo, auditRepo, comm, clk),

		CreateProduct:          create_product.NewInteractor(productRepo, auditRepo, comm, clk),
		UpdateProduct:          update_product.NewInteractor(productRepo, auditRepo, comm, clk),
		SetProductStatus:       set_product_status.NewInteractor(productRepo, auditRepo, comm, clk),
		AssignProductAttribute: assign_product_attribute.NewInteractor(productRepo, attributeRepo, auditRepo, comm, clk),
		AssignProductCategory:  assign_product_category.NewInteractor(productRepo, categoryRepo, auditRepo, comm, clk),

		CreateVariant:       create_variant.NewInteractor(variantRepo, productRepo, auditRepo, comm, clk),
		AddVariantAttribute: add_variant_attribute.NewInteractor(variantRepo, attributeRepo, auditRepo, comm, clk),
		UpdateVariantPrice:  update_variant_price.NewInteractor(variantRepo, auditRepo, comm, clk),
		SetVariantStock:     set_variant_stock.NewInteractor(variantRepo, auditRepo, comm, clk),
		SetVariantStatus:    set_variant_status.NewInteractor(variantRepo, auditRepo, comm, clk),

		ListCategories: list_categories.NewQuery(readModel),
		ListAttributes: list_attributes.NewQuery(readModel),
		ListProducts:   list_products.NewQuery(readModel),
		CategoryTree:   category_tree.NewQuery(readModel),
		GetProduct:     get_product.NewQuery(readModel),

		Clock:  clk,
		Client: client,
	}

	return services, cleanup
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
