package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_attribute"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/models/m_variant"
	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// Listing columns exposed to the admin tables. Requests sort and search by
// these names; anything else is ignored so request input never reaches SQL
// as an identifier.
var (
	categorySortable = map[string]string{
		"name":      m_category.Name,
		"slug":      m_category.Slug,
		"level":     m_category.Level,
		"path":      m_category.Path,
		"isActive":  m_category.IsActive,
		"updatedAt": m_category.UpdatedAt,
	}
	categorySearchable = []string{m_category.Name, m_category.Slug, m_category.Path}

	attributeSortable = map[string]string{
		"name":        m_attribute.Name,
		"displayName": m_attribute.DisplayName,
		"type":        m_attribute.Type,
		"updatedAt":   m_attribute.UpdatedAt,
	}
	attributeSearchable = []string{m_attribute.Name, m_attribute.DisplayName}

	productSortable = map[string]string{
		"name":      m_product.Name,
		"slug":      m_product.Slug,
		"sku":       m_product.SKU,
		"basePrice": m_product.BasePrice,
		"isActive":  m_product.IsActive,
		"updatedAt": m_product.UpdatedAt,
	}
	productSearchable = []string{m_product.Name, m_product.Slug, m_product.SKU, m_product.Description}
)

// ReadModel serves admin listings and detail views straight from Spanner,
// bypassing the aggregates.
type ReadModel struct {
	client *spanner.Client
	cache  contracts.TreeCache
}

// NewReadModel creates a ReadModel. cache may be nil when tree caching is
// disabled.
func NewReadModel(client *spanner.Client, cache contracts.TreeCache) contracts.ReadModel {
	return &ReadModel{client: client, cache: cache}
}

// ListCategories serves the category admin table.
func (rm *ReadModel) ListCategories(ctx context.Context, req *datatable.Request) (*datatable.Response, error) {
	base := query.From(m_category.TableName)
	return rm.list(ctx, req, base, categorySortable, categorySearchable, m_category.AllColumns, func(row *spanner.Row) (interface{}, error) {
		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, err
		}
		return contracts.CategoryRow{
			CategoryID: data.CategoryID,
			Name:       data.Name,
			Slug:       data.Slug,
			ParentID:   stringPtr(data.ParentID),
			Level:      data.Level,
			Path:       data.Path,
			IsActive:   data.IsActive,
			UpdatedAt:  data.UpdatedAt,
		}, nil
	})
}

// ListAttributes serves the attribute admin table.
func (rm *ReadModel) ListAttributes(ctx context.Context, req *datatable.Request) (*datatable.Response, error) {
	base := query.From(m_attribute.TableName)
	return rm.list(ctx, req, base, attributeSortable, attributeSearchable, m_attribute.AllColumns, func(row *spanner.Row) (interface{}, error) {
		var data m_attribute.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, err
		}
		return contracts.AttributeRow{
			AttributeID: data.AttributeID,
			Name:        data.Name,
			DisplayName: data.DisplayName,
			Type:        data.Type,
			Filterable:  data.Filterable,
			Searchable:  data.Searchable,
			IsVariant:   data.IsVariant,
			UpdatedAt:   data.UpdatedAt,
		}, nil
	})
}

// ListProducts serves the product admin table.
func (rm *ReadModel) ListProducts(ctx context.Context, req *datatable.Request) (*datatable.Response, error) {
	base := query.From(m_product.TableName)
	return rm.list(ctx, req, base, productSortable, productSearchable, m_product.AllColumns, func(row *spanner.Row) (interface{}, error) {
		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, err
		}
		return contracts.ProductRow{
			ProductID: data.ProductID,
			Name:      data.Name,
			Slug:      data.Slug,
			SKU:       stringPtr(data.SKU),
			BasePrice: decimalFromNumeric(data.BasePrice).StringFixed(2),
			Currency:  data.Currency,
			IsActive:  data.IsActive,
			UpdatedAt: data.UpdatedAt,
		}, nil
	})
}

// list runs the three DataTable queries: unfiltered count, filtered count,
// and the page itself, all derived from one builder so the WHERE clauses
// cannot drift apart.
func (rm *ReadModel) list(
	ctx context.Context,
	req *datatable.Request,
	base *query.Builder,
	sortable map[string]string,
	searchable []string,
	columns []string,
	scan func(*spanner.Row) (interface{}, error),
) (*datatable.Response, error) {
	req.Normalize()

	total, err := rm.count(ctx, base.Count().Build())
	if err != nil {
		return nil, err
	}

	filtered := base
	if req.Search != "" {
		terms := make([]query.Condition, 0, len(searchable))
		for _, col := range searchable {
			terms = append(terms, query.Like(col, req.Search))
		}
		filtered = filtered.Where(query.Or(terms...))
	}

	filteredCount := total
	if req.Search != "" {
		filteredCount, err = rm.count(ctx, filtered.Count().Build())
		if err != nil {
			return nil, err
		}
	}

	page := filtered.Select(columns...)
	ordered := false
	for _, o := range req.Order {
		col, ok := sortable[o.Column]
		if !ok {
			continue
		}
		dir := query.Asc
		if o.Dir == datatable.SortDesc {
			dir = query.Desc
		}
		page = page.OrderBy(col, dir)
		ordered = true
	}
	if !ordered {
		page = page.OrderBy(sortable["name"], query.Asc)
	}
	page = page.Limit(req.Length).Offset(req.Start)

	rows := make([]interface{}, 0, req.Length)
	iter := rm.client.Single().Query(ctx, page.Build())
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate listing: %w", err)
		}
		dto, err := scan(row)
		if err != nil {
			return nil, fmt.Errorf("parse listing row: %w", err)
		}
		rows = append(rows, dto)
	}

	return &datatable.Response{
		Data:            rows,
		RecordsTotal:    total,
		RecordsFiltered: filteredCount,
	}, nil
}

func (rm *ReadModel) count(ctx context.Context, stmt spanner.Statement) (int64, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// CategoryTree returns the nested parent-selector tree, cache-first.
func (rm *ReadModel) CategoryTree(ctx context.Context) ([]contracts.TreeNode, error) {
	if rm.cache != nil {
		if tree, ok := rm.cache.Get(ctx); ok {
			return tree, nil
		}
	}

	stmt := query.From(m_category.TableName).
		Select(m_category.CategoryID, m_category.Name, m_category.Slug, m_category.ParentID, m_category.Level, m_category.IsActive).
		OrderBy(m_category.Name, query.Asc).
		Build()

	type flatNode struct {
		node     contracts.TreeNode
		parentID *string
	}

	var flat []flatNode
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate category tree: %w", err)
		}

		var (
			id, name, slug string
			parentID       spanner.NullString
			level          int64
			isActive       bool
		)
		if err := row.Columns(&id, &name, &slug, &parentID, &level, &isActive); err != nil {
			return nil, fmt.Errorf("parse category tree row: %w", err)
		}
		flat = append(flat, flatNode{
			node: contracts.TreeNode{
				CategoryID: id,
				Name:       name,
				Slug:       slug,
				Level:      level,
				IsActive:   isActive,
				Children:   []contracts.TreeNode{},
			},
			parentID: stringPtr(parentID),
		})
	}

	// Rows arrive name-sorted, so appending in order keeps every sibling
	// list alphabetical without a second sort.
	children := make(map[string][]contracts.TreeNode)
	var rootIDs []string
	byID := make(map[string]contracts.TreeNode, len(flat))
	for _, fn := range flat {
		byID[fn.node.CategoryID] = fn.node
		if fn.parentID == nil {
			rootIDs = append(rootIDs, fn.node.CategoryID)
		} else {
			children[*fn.parentID] = append(children[*fn.parentID], fn.node)
		}
	}

	var attach func(node contracts.TreeNode) contracts.TreeNode
	attach = func(node contracts.TreeNode) contracts.TreeNode {
		for _, child := range children[node.CategoryID] {
			node.Children = append(node.Children, attach(child))
		}
		return node
	}

	tree := make([]contracts.TreeNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		tree = append(tree, attach(byID[id]))
	}

	if rm.cache != nil {
		rm.cache.Set(ctx, tree)
	}
	return tree, nil
}

// GetProduct returns the product detail with its variants. Variants stored
// without a price report the product's current base price.
func (rm *ReadModel) GetProduct(ctx context.Context, productID string) (*contracts.ProductDetail, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.AllColumns)
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

	var categories []string
	if err := decodeJSON(data.Categories, &categories); err != nil {
		return nil, fmt.Errorf("parse product categories: %w", err)
	}
	attributes, err := jsonMap(data.Attributes)
	if err != nil {
		return nil, fmt.Errorf("parse product attributes: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	if attributes == nil {
		attributes = map[string]interface{}{}
	}

	basePrice := decimalFromNumeric(data.BasePrice)
	detail := &contracts.ProductDetail{
		ProductID:   data.ProductID,
		Name:        data.Name,
		Slug:        data.Slug,
		SKU:         stringPtr(data.SKU),
		BasePrice:   basePrice.StringFixed(2),
		Currency:    data.Currency,
		Description: data.Description,
		IsActive:    data.IsActive,
		Categories:  categories,
		Attributes:  attributes,
		Variants:    []contracts.VariantDTO{},
	}

	stmt := query.From(m_variant.TableName).
		Select(m_variant.AllColumns...).
		Where(query.Eq(m_variant.ProductID, productID)).
		OrderBy(m_variant.CreatedAt, query.Asc).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()
	for {
		vrow, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate variants: %w", err)
		}

		var vdata m_variant.Data
		if err := vrow.ToStruct(&vdata); err != nil {
			return nil, fmt.Errorf("parse variant: %w", err)
		}

		values, err := jsonMap(vdata.AttributeValues)
		if err != nil {
			return nil, fmt.Errorf("parse variant attribute values: %w", err)
		}
		if values == nil {
			values = map[string]interface{}{}
		}

		dto := contracts.VariantDTO{
			VariantID:       vdata.VariantID,
			SKU:             vdata.SKU,
			StockQuantity:   vdata.StockQuantity,
			IsActive:        vdata.IsActive,
			AttributeValues: values,
		}
		if vdata.Price.Valid && vdata.Currency.Valid {
			dto.Price = decimalFromNumeric(vdata.Price).StringFixed(2)
			dto.Currency = vdata.Currency.StringVal
		} else {
			dto.Price = basePrice.StringFixed(2)
			dto.Currency = data.Currency
			dto.PriceInherited = true
		}
		detail.Variants = append(detail.Variants, dto)
	}

	return detail, nil
}
