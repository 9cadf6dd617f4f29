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
	"github.com/light-bringer/catalog-service/internal/models/m_attribute"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// AttributeRepo implements AttributeRepository for Spanner.
type AttributeRepo struct {
	client *spanner.Client
	model  *m_attribute.Model
	clock  clock.Clock
}

// NewAttributeRepo creates a new AttributeRepo.
func NewAttributeRepo(client *spanner.Client, clk clock.Clock) contracts.AttributeRepository {
	return &AttributeRepo{
		client: client,
		model:  m_attribute.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new attribute.
func (r *AttributeRepo) InsertMut(attribute *domain.Attribute) *spanner.Mutation {
	return r.model.InsertMut(r.domainToData(attribute))
}

// UpdateMut creates a mutation for an attribute's dirty fields.
func (r *AttributeRepo) UpdateMut(attribute *domain.Attribute) *spanner.Mutation {
	changes := attribute.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldDisplayName) {
		updates[m_attribute.DisplayName] = attribute.DisplayName()
	}
	if changes.Dirty(domain.FieldFilterable) {
		updates[m_attribute.Filterable] = attribute.Filterable()
	}
	if changes.Dirty(domain.FieldSearchable) {
		updates[m_attribute.Searchable] = attribute.Searchable()
	}
	if changes.Dirty(domain.FieldIsVariant) {
		updates[m_attribute.IsVariant] = attribute.IsVariant()
	}
	if changes.Dirty(domain.FieldConfiguration) {
		updates[m_attribute.Configuration] = nullJSON(attribute.Configuration().ToMap())
	}

	if len(updates) == 0 {
		return nil
	}

	updates[m_attribute.UpdatedAt] = r.clock.Now()
	updates[m_attribute.Version] = attribute.Version() + 1

	return r.model.UpdateMut(attribute.ID(), updates)
}

// DeleteMut creates a mutation for deleting an attribute.
func (r *AttributeRepo) DeleteMut(attributeID string) *spanner.Mutation {
	return r.model.DeleteMut(attributeID)
}

// GetByID loads an attribute, reconstructing the domain aggregate.
func (r *AttributeRepo) GetByID(ctx context.Context, attributeID string) (*domain.Attribute, error) {
	row, err := r.client.Single().ReadRow(ctx, m_attribute.TableName, spanner.Key{attributeID}, m_attribute.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrAttributeNotFound
		}
		return nil, fmt.Errorf("read attribute: %w", err)
	}

	var data m_attribute.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("parse attribute: %w", err)
	}

	return r.dataToDomain(&data)
}

// NameExists probes whether another attribute holds the system name.
func (r *AttributeRepo) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	stmt := spanner.Statement{
		SQL: "SELECT attribute_id FROM attributes WHERE name = @name AND attribute_id != @exclude LIMIT 1",
		Params: map[string]interface{}{
			"name":    name,
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
		return false, fmt.Errorf("probe attribute name: %w", err)
	}
	return true, nil
}

func (r *AttributeRepo) domainToData(attribute *domain.Attribute) *m_attribute.Data {
	return &m_attribute.Data{
		AttributeID:   attribute.ID(),
		Name:          attribute.Name(),
		DisplayName:   attribute.DisplayName(),
		Type:          string(attribute.AttrType()),
		Configuration: nullJSON(attribute.Configuration().ToMap()),
		Filterable:    attribute.Filterable(),
		Searchable:    attribute.Searchable(),
		IsVariant:     attribute.IsVariant(),
		Version:       attribute.Version(),
		CreatedAt:     attribute.CreatedAt(),
		UpdatedAt:     attribute.UpdatedAt(),
	}
}

func (r *AttributeRepo) dataToDomain(data *m_attribute.Data) (*domain.Attribute, error) {
	rawConfig, err := jsonMap(data.Configuration)
	if err != nil {
		return nil, fmt.Errorf("parse attribute configuration: %w", err)
	}

	return domain.ReconstructAttribute(
		data.AttributeID,
		data.Name,
		data.DisplayName,
		domain.AttributeType(data.Type),
		rawConfig,
		data.Filterable,
		data.Searchable,
		data.IsVariant,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	)
}

// jsonMap decodes a NullJSON column into a plain map. Spanner hands JSON
// values back as interface{}; round-tripping through encoding/json gives the
// concrete map shape the domain decoders expect.
func jsonMap(nj spanner.NullJSON) (map[string]interface{}, error) {
	if !nj.Valid || nj.Value == nil {
		return nil, nil
	}
	if m, ok := nj.Value.(map[string]interface{}); ok {
		return m, nil
	}
	raw, err := json.Marshal(nj.Value)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
