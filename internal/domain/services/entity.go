package services

import (
	"context"
	"fmt"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/ersonp/restmodel/internal/domain/ports"
)

// EntityService manages instance operations for every registered entity
// type.
type EntityService struct {
	validator *Validator
	store     ports.ModelStore
}

// NewEntityService creates a new EntityService.
func NewEntityService(validator *Validator, store ports.ModelStore) *EntityService {
	return &EntityService{
		validator: validator,
		store:     store,
	}
}

// Create validates a raw create body and inserts a new instance. Fields
// absent from the body are set to their defaults.
func (s *EntityService) Create(ctx context.Context, def *entities.EntityType, raw map[string]any) (*entities.Instance, error) {
	fields, err := s.validator.ValidateCreate(def, raw)
	if err != nil {
		return nil, err
	}

	inst, err := s.store.InsertInstance(ctx, def.Name, fields)
	if err != nil {
		return nil, fmt.Errorf("inserting instance: %w", err)
	}
	return inst, nil
}

// Get returns the instance with the given id.
func (s *EntityService) Get(ctx context.Context, def *entities.EntityType, id string) (*entities.Instance, error) {
	inst, err := s.store.FindInstance(ctx, def.Name, id)
	if err != nil {
		return nil, fmt.Errorf("finding instance: %w", err)
	}
	if inst == nil {
		return nil, entities.NewInstanceNotFound(def.Plural, id)
	}
	return inst, nil
}

// List returns all instances of the type in creation order, keeping only
// those matching the filter.
func (s *EntityService) List(ctx context.Context, def *entities.EntityType, filter *Filter) ([]*entities.Instance, error) {
	instances, err := s.store.ListInstances(ctx, def.Name)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}
	if filter == nil || filter.Empty() {
		return instances, nil
	}

	matched := make([]*entities.Instance, 0, len(instances))
	for _, inst := range instances {
		if filter.Matches(inst) {
			matched = append(matched, inst)
		}
	}
	return matched, nil
}

// Update validates a raw amend body and merges it into the existing
// instance. Fields absent from the body keep their values.
func (s *EntityService) Update(ctx context.Context, def *entities.EntityType, id string, raw map[string]any) (*entities.Instance, error) {
	existing, err := s.Get(ctx, def, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.validator.ValidateUpdate(def, existing, raw)
	if err != nil {
		return nil, err
	}

	updated := &entities.Instance{Type: def.Name, ID: id, Fields: fields}
	if err := s.store.UpdateInstance(ctx, updated); err != nil {
		return nil, fmt.Errorf("updating instance: %w", err)
	}
	return updated, nil
}

// Delete removes the instance and every link naming it on either side.
func (s *EntityService) Delete(ctx context.Context, def *entities.EntityType, id string) error {
	if _, err := s.Get(ctx, def, id); err != nil {
		return err
	}

	if err := s.store.DeleteInstance(ctx, def.Name, id); err != nil {
		return fmt.Errorf("deleting instance: %w", err)
	}
	return nil
}

// Count returns the number of instances of the type.
func (s *EntityService) Count(ctx context.Context, def *entities.EntityType) (int, error) {
	return s.store.CountInstances(ctx, def.Name)
}
