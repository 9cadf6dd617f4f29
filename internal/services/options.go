package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
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
	"github.com/light-bringer/catalog-service/internal/pkg/config"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
	transport "github.com/light-bringer/catalog-service/internal/transport/http"
)

// ServiceOptions holds all wired application dependencies.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client

	CategoryHandler  *transport.CategoryHandler
	AttributeHandler *transport.AttributeHandler
	ProductHandler   *transport.ProductHandler
	VariantHandler   *transport.VariantHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ServiceOptions, error) {
	// 1. Infrastructure clients
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database())
	if err != nil {
		return nil, fmt.Errorf("create spanner client: %w", err)
	}

	var redisClient *redis.Client
	var treeCache contracts.TreeCache = repo.NopTreeCache{}
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		treeCache = repo.NewRedisTreeCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
	}

	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	// 2. Repositories
	categoryRepo := repo.NewCategoryRepo(spannerClient, clk)
	attributeRepo := repo.NewAttributeRepo(spannerClient, clk)
	productRepo := repo.NewProductRepo(spannerClient, clk)
	variantRepo := repo.NewVariantRepo(spannerClient, clk)
	auditRepo := repo.NewAuditRepo()
	readModel := repo.NewReadModel(spannerClient, treeCache)

	// 3. Write usecases
	createCategory := create_category.NewInteractor(categoryRepo, auditRepo, comm, treeCache, clk)
	renameCategory := rename_category.NewInteractor(categoryRepo, auditRepo, comm, treeCache, clk)
	reparentCategory := reparent_category.NewInteractor(categoryRepo, auditRepo, comm, treeCache, clk)
	setCategoryStatus := set_category_status.NewInteractor(categoryRepo, auditRepo, comm, treeCache, clk)
	deleteCategory := delete_category.NewInteractor(categoryRepo, productRepo, auditRepo, comm, treeCache, clk)

	createAttribute := create_attribute.NewInteractor(attributeRepo, auditRepo, comm, clk)
	updateAttribute := update_attribute.NewInteractor(attributeRepo, auditRepo, comm, clk)
	deleteAttribute := delete_attribute.NewInteractor(attributeRepo, productRepo, auditRepo, comm, clk)

	createProduct := create_product.NewInteractor(productRepo, auditRepo, comm, clk)
	updateProduct := update_product.NewInteractor(productRepo, auditRepo, comm, clk)
	assignProductAttribute := assign_product_attribute.NewInteractor(productRepo, attributeRepo, auditRepo, comm, clk)
	assignProductCategory := assign_product_category.NewInteractor(productRepo, categoryRepo, auditRepo, comm, clk)
	setProductStatus := set_product_status.NewInteractor(productRepo, auditRepo, comm, clk)

	createVariant := create_variant.NewInteractor(variantRepo, productRepo, auditRepo, comm, clk)
	addVariantAttribute := add_variant_attribute.NewInteractor(variantRepo, attributeRepo, auditRepo, comm, clk)
	setVariantStock := set_variant_stock.NewInteractor(variantRepo, auditRepo, comm, clk)
	updateVariantPrice := update_variant_price.NewInteractor(variantRepo, auditRepo, comm, clk)
	setVariantStatus := set_variant_status.NewInteractor(variantRepo, auditRepo, comm, clk)

	// 4. Queries
	listCategories := list_categories.NewQuery(readModel)
	listAttributes := list_attributes.NewQuery(readModel)
	listProducts := list_products.NewQuery(readModel)
	categoryTree := category_tree.NewQuery(readModel)
	getProduct := get_product.NewQuery(readModel)

	// 5. HTTP handlers
	categoryHandler := transport.NewCategoryHandler(
		createCategory, renameCategory, reparentCategory, setCategoryStatus, deleteCategory,
		listCategories, categoryTree, log,
	)
	attributeHandler := transport.NewAttributeHandler(
		createAttribute, updateAttribute, deleteAttribute, listAttributes, log,
	)
	productHandler := transport.NewProductHandler(
		createProduct, updateProduct, assignProductAttribute, assignProductCategory,
		setProductStatus, createVariant, listProducts, getProduct, log,
	)
	variantHandler := transport.NewVariantHandler(
		addVariantAttribute, setVariantStock, updateVariantPrice, setVariantStatus, log,
	)

	return &ServiceOptions{
		SpannerClient:    spannerClient,
		RedisClient:      redisClient,
		CategoryHandler:  categoryHandler,
		AttributeHandler: attributeHandler,
		ProductHandler:   productHandler,
		VariantHandler:   variantHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
}
