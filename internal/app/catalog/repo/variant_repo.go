package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_variant"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// VariantRepo implements VariantRepository for Spanner.
type VariantRepo struct {
	client *spanner.Client
	model  *m_variant.Model
	clock  clock.Clock
}

// NewVariantRepo creates a new VariantRepo.
func NewVariantRepo(client *spanner.Client, clk clock.Clock) contracts.VariantRepository {
	return &VariantRepo{
		client: client,
		model:  m_variant.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new variant.
func (r *VariantRepo) InsertMut(variant *domain.ProductVariant) (*spanner.Mutation, error) {
	return r.model.InsertMut(r.domainToData(variant)), nil
}

// UpdateMut creates a mutation for a variant's dirty fields.
func (r *VariantRepo) UpdateMut(variant *domain.ProductVariant) (*spanner.Mutation, error) {
	changes := variant.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldPrice) {
		if price := variant.Price(); price != nil {
			updates[m_variant.Price] = numericFromDecimal(price.Amount())
			currency := price.Currency()
			updates[m_variant.Currency] = nullString(&currency)
		} else {
			updates[m_variant.Price] = spanner.NullNumeric{}
			updates[m_variant.Currency] = spanner.NullString{}
		}
	}
	if changes.Dirty(domain.FieldStockQuantity) {
		updates[m_variant.StockQuantity] = variant.StockQuantity()
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_variant.IsActive] = variant.IsActive()
	}
	if dirtyWithPrefix(changes, domain.FieldAttributeValues) {
		updates[m_variant.AttributeValues] = nullJSON(variant.AttributeValues())
	}
	if dirtyWithPrefix(changes, domain.FieldMetadata) {
		updates[m_variant.Metadata] = nullJSON(variant.Metadata())
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_variant.UpdatedAt] = r.clock.Now()
	updates[m_variant.Version] = variant.Version() + 1

	return r.model.UpdateMut(variant.ID(), updates), nil
}

// DeleteMut creates a mutation for deleting a variant.
func (r *VariantRepo) DeleteMut(variantID string) *spanner.Mutation {
	return r.model.DeleteMut(variantID)
}

// GetByID loads a variant, reconstructing the domain aggregate.
func (r *VariantRepo) GetByID(ctx context.Context, variantID string) (*domain.ProductVariant, error) {
	row, err := r.client.Single().ReadRow(ctx, m_variant.TableName, spanner.Key{variantID}, m_variant.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrVariantNotFound
		}
		return nil, fmt.Errorf("read variant: %w", err)
	}

	var data m_variant.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("parse variant: %w", err)
	}

	return r.dataToDomain(&data)
}

// ListByProduct returns all variants of a product.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*domain.ProductVariant, error) {
	stmt := spanner.Statement{
		SQL: "SELECT " + columnList(m_variant.AllColumns) + " FROM product_variants WHERE product_id = @product ORDER BY created_at",
		Params: map[string]interface{}{
			"product": productID,
		},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*domain.ProductVariant
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate variants: %w", err)
		}

		var data m_variant.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("parse variant: %w", err)
		}
		variant, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		out = append(out, variant)
	}
	return out, nil
}

// SKUExists probes whether another variant holds the sku.
func (r *VariantRepo) SKUExists(ctx context.Context, sku string, excludeID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT variant_id FROM product_variants WHERE sku = @sku AND variant_id != @exclude LIMIT 1",
		Params: map[string]interface{}{
			"sku":     sku,
			"exclude": excludeID,
		},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probe variant sku: %w", err)
	}
	return true, nil
}

func (r *VariantRepo) domainToData(variant *domain.ProductVariant) *m_variant.Data {
	data := &m_variant.Data{
		VariantID:       variant.ID(),
		ProductID:       variant.ProductID(),
		SKU:             variant.SKU(),
		StockQuantity:   variant.StockQuantity(),
		IsActive:        variant.IsActive(),
		AttributeValues: nullJSON(variant.AttributeValues()),
		Metadata:        nullJSON(variant.Metadata()),
		Version:         variant.Version(),
		CreatedAt:       variant.CreatedAt(),
		UpdatedAt:       variant.UpdatedAt(),
	}
	if price := variant.Price(); price != nil {
		data.Price = numericFromDecimal(price.Amount())
		currency := price.Currency()
		data.Currency = nullString(&currency)
	}
	return data
}

func (r *VariantRepo) dataToDomain(data *m_variant.Data) (*domain.ProductVariant, error) {
	var price *domain.Money
	if data.Price.Valid && data.Currency.Valid {
		p, err := domain.NewMoney(decimalFromNumeric(data.Price), data.Currency.StringVal)
		if err != nil {
			return nil, fmt.Errorf("stored variant price invalid: %w", err)
		}
		price = p
	}

	var attributeValues map[string]interface{}
	if err := decodeJSON(data.AttributeValues, &attributeValues); err != nil {
		return nil, fmt.Errorf("parse variant attribute values: %w", err)
	}

	var metadata map[string]interface{}
	if err := decodeJSON(data.Metadata, &metadata); err != nil {
		return nil, fmt.Errorf("parse variant metadata: %w", err)
	}

	return domain.ReconstructProductVariant(
		data.VariantID,
		data.ProductID,
		data.SKU,
		price,
		data.StockQuantity,
		data.IsActive,
		attributeValues,
		metadata,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}
