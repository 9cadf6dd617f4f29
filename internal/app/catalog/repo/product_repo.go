package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
	clock  clock.Clock
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, clk clock.Clock) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	data, err := r.domainToData(product)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for a product's dirty fields.
func (r *ProductRepo) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}
	if changes.Dirty(domain.FieldSlug) {
		updates[m_product.Slug] = product.Slug().String()
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_product.Description] = product.Description()
	}
	if changes.Dirty(domain.FieldSKU) {
		updates[m_product.SKU] = nullString(product.SKU())
	}
	if changes.Dirty(domain.FieldBasePrice) {
		price := product.BasePrice()
		updates[m_product.BasePrice] = numericFromDecimal(price.Amount())
		updates[m_product.Currency] = price.Currency()
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_product.IsActive] = product.IsActive()
	}
	if changes.Dirty(domain.FieldCategories) {
		updates[m_product.Categories] = nullJSON(product.CategoryIDs())
	}
	if dirtyWithPrefix(changes, domain.FieldAttributes) {
		updates[m_product.Attributes] = nullJSON(product.Attributes())
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_product.UpdatedAt] = r.clock.Now()
	updates[m_product.Version] = product.Version() + 1

	return r.model.UpdateMut(product.ID(), updates), nil
}

// DeleteMut creates a mutation for deleting a product.
func (r *ProductRepo) DeleteMut(productID string) *spanner.Mutation {
	return r.model.DeleteMut(productID)
}

// GetByID loads a product, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("parse product: %w", err)
	}

	return r.dataToDomain(&data)
}

// Exists checks whether a product id resolves.
func (r *ProductRepo) Exists(ctx context.Context, productID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT product_id FROM products WHERE product_id = @id LIMIT 1",
		Params: map[string]interface{}{
			"id": productID,
		},
	}
	return r.exists(ctx, stmt, "probe product id")
}

// SlugExists probes whether another product holds the slug.
func (r *ProductRepo) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT product_id FROM products WHERE slug = @slug AND product_id != @exclude LIMIT 1",
		Params: map[string]interface{}{
			"slug":    slug,
			"exclude": excludeID,
		},
	}
	return r.exists(ctx, stmt, "probe product slug")
}

// SKUExists probes whether another product holds the sku.
func (r *ProductRepo) SKUExists(ctx context.Context, sku string, excludeID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT product_id FROM products WHERE sku = @sku AND product_id != @exclude LIMIT 1",
		Params: map[string]interface{}{
			"sku":     sku,
			"exclude": excludeID,
		},
	}
	return r.exists(ctx, stmt, "probe product sku")
}

// CountInCategory counts products assigned to a category.
func (r *ProductRepo) CountInCategory(ctx context.Context, categoryID string) (int64, error) {
	stmt := spanner.Statement{
		SQL: "SELECT COUNT(*) AS cnt FROM products WHERE categories IS NOT NULL AND @category IN UNNEST(JSON_VALUE_ARRAY(categories))",
		Params: map[string]interface{}{
			"category": categoryID,
		},
	}

	var count int64
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("count products in category: %w", err)
	}
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("count products in category: %w", err)
	}
	return count, nil
}

// CountUsingAttribute counts products carrying an assignment for the
// attribute. JSON paths must be literals in Spanner SQL, so the key probe
// happens client-side over the attribute maps.
func (r *ProductRepo) CountUsingAttribute(ctx context.Context, attributeID string) (int64, error) {
	stmt := spanner.Statement{
		SQL: "SELECT attributes FROM products WHERE attributes IS NOT NULL",
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var count int64
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count products using attribute: %w", err)
		}

		var attrs spanner.NullJSON
		if err := row.Columns(&attrs); err != nil {
			return 0, fmt.Errorf("count products using attribute: %w", err)
		}
		m, err := jsonMap(attrs)
		if err != nil {
			return 0, fmt.Errorf("count products using attribute: %w", err)
		}
		if _, ok := m[attributeID]; ok {
			count++
		}
	}
	return count, nil
}

func (r *ProductRepo) exists(ctx context.Context, stmt spanner.Statement, what string) (bool, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return true, nil
}

func (r *ProductRepo) domainToData(product *domain.Product) (*m_product.Data, error) {
	price := product.BasePrice()
	if price == nil {
		return nil, domain.ErrNegativeAmount
	}

	return &m_product.Data{
		ProductID:   product.ID(),
		Name:        product.Name(),
		Slug:        product.Slug().String(),
		SKU:         nullString(product.SKU()),
		BasePrice:   numericFromDecimal(price.Amount()),
		Currency:    price.Currency(),
		Description: product.Description(),
		IsActive:    product.IsActive(),
		Categories:  nullJSON(product.CategoryIDs()),
		Attributes:  nullJSON(product.Attributes()),
		Version:     product.Version(),
		CreatedAt:   product.CreatedAt(),
		UpdatedAt:   product.UpdatedAt(),
	}, nil
}

func (r *ProductRepo) dataToDomain(data *m_product.Data) (*domain.Product, error) {
	slug, err := domain.NewSlug(data.Slug)
	if err != nil {
		return nil, fmt.Errorf("stored slug invalid: %w", err)
	}

	basePrice, err := domain.NewMoney(decimalFromNumeric(data.BasePrice), data.Currency)
	if err != nil {
		return nil, fmt.Errorf("stored base price invalid: %w", err)
	}

	var categories []string
	if err := decodeJSON(data.Categories, &categories); err != nil {
		return nil, fmt.Errorf("parse product categories: %w", err)
	}

	var attributes map[string]domain.AttributeValue
	if err := decodeJSON(data.Attributes, &attributes); err != nil {
		return nil, fmt.Errorf("parse product attributes: %w", err)
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		slug,
		data.Description,
		basePrice,
		stringPtr(data.SKU),
		data.IsActive,
		categories,
		attributes,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}

// decodeJSON round-trips a NullJSON column into a typed value.
func decodeJSON(nj spanner.NullJSON, out interface{}) error {
	if !nj.Valid || nj.Value == nil {
		return nil
	}
	raw, err := json.Marshal(nj.Value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
