package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/ersonp/restmodel/internal/domain/ports"
	"github.com/google/uuid"
)

// RelationshipService manages links between entity instances. Links are
// stored once in the forward orientation of their definition; views resolved
// through the schema decide which side of the record a traversal reads.
type RelationshipService struct {
	schema   *SchemaService
	entities *EntityService
	store    ports.ModelStore
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(schema *SchemaService, entityService *EntityService, store ports.ModelStore) *RelationshipService {
	return &RelationshipService{
		schema:   schema,
		entities: entityService,
		store:    store,
	}
}

// Link connects the origin instance to the target instance under the named
// relationship and returns the target. Linking an already linked pair is a
// no-op that still returns the target; no second record is created.
func (s *RelationshipService) Link(ctx context.Context, originDef *entities.EntityType, originID, relName, targetID string) (*entities.Instance, error) {
	if _, err := s.entities.Get(ctx, originDef, originID); err != nil {
		return nil, err
	}

	view := s.schema.Relationship(relName, originDef.Name)
	if view == nil {
		return nil, entities.NewSegmentNotFound(fmt.Sprintf("%s/%s/%s", originDef.Plural, originID, relName))
	}

	targetDef := s.schema.EntityType(view.TargetType())
	target, err := s.entities.Get(ctx, targetDef, targetID)
	if err != nil {
		return nil, err
	}

	def := view.Definition
	storedOriginID, storedTargetID := originID, targetID
	if view.Inverted {
		storedOriginID, storedTargetID = targetID, originID
	}

	existing, err := s.store.FindLinkBetween(ctx, def.Name, def.Origin, storedOriginID, storedTargetID)
	if err != nil {
		return nil, fmt.Errorf("checking existing link: %w", err)
	}
	if existing != nil {
		return target, nil
	}

	link := &entities.Link{
		ID:           uuid.New().String(),
		Relationship: def.Name,
		OriginType:   def.Origin,
		OriginID:     storedOriginID,
		TargetType:   def.Target,
		TargetID:     storedTargetID,
		CreatedAt:    time.Now(),
	}
	if err := s.store.SaveLink(ctx, link); err != nil {
		return nil, fmt.Errorf("saving link: %w", err)
	}
	return target, nil
}

// Unlink removes the link between the origin and target instances under the
// named relationship. A link that does not exist is not found.
func (s *RelationshipService) Unlink(ctx context.Context, originDef *entities.EntityType, originID, relName, targetID string) error {
	if _, err := s.entities.Get(ctx, originDef, originID); err != nil {
		return err
	}

	path := fmt.Sprintf("%s/%s/%s/%s", originDef.Plural, originID, relName, targetID)
	view := s.schema.Relationship(relName, originDef.Name)
	if view == nil {
		return entities.NewSegmentNotFound(path)
	}

	def := view.Definition
	storedOriginID, storedTargetID := originID, targetID
	if view.Inverted {
		storedOriginID, storedTargetID = targetID, originID
	}

	link, err := s.store.FindLinkBetween(ctx, def.Name, def.Origin, storedOriginID, storedTargetID)
	if err != nil {
		return fmt.Errorf("finding link: %w", err)
	}
	if link == nil {
		return entities.NewSegmentNotFound(path)
	}

	if err := s.store.DeleteLink(ctx, link.ID); err != nil {
		return fmt.Errorf("deleting link: %w", err)
	}
	return nil
}

// Related returns the instances connected to the origin instance under the
// named relationship, in link-creation order, along with the definition of
// the type they belong to.
func (s *RelationshipService) Related(ctx context.Context, originDef *entities.EntityType, originID, relName string) (*entities.EntityType, []*entities.Instance, error) {
	if _, err := s.entities.Get(ctx, originDef, originID); err != nil {
		return nil, nil, err
	}

	view := s.schema.Relationship(relName, originDef.Name)
	if view == nil {
		return nil, nil, entities.NewSegmentNotFound(fmt.Sprintf("%s/%s/%s", originDef.Plural, originID, relName))
	}

	def := view.Definition
	var links []*entities.Link
	var err error
	if view.Inverted {
		links, err = s.store.FindLinksByTarget(ctx, def.Name, def.Origin, originID)
	} else {
		links, err = s.store.FindLinksByOrigin(ctx, def.Name, def.Origin, originID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("finding links: %w", err)
	}

	targetDef := s.schema.EntityType(view.TargetType())
	related := make([]*entities.Instance, 0, len(links))
	for _, link := range links {
		relatedID := link.TargetID
		if view.Inverted {
			relatedID = link.OriginID
		}
		inst, err := s.store.FindInstance(ctx, targetDef.Name, relatedID)
		if err != nil {
			return nil, nil, fmt.Errorf("finding related instance: %w", err)
		}
		if inst == nil {
			continue
		}
		related = append(related, inst)
	}
	return targetDef, related, nil
}

// CreateAndLink validates the raw body as a create of the relationship's
// target type, creates the instance and links it to the origin in one
// operation, returning the new instance.
func (s *RelationshipService) CreateAndLink(ctx context.Context, originDef *entities.EntityType, originID, relName string, raw map[string]any) (*entities.Instance, error) {
	if _, err := s.entities.Get(ctx, originDef, originID); err != nil {
		return nil, err
	}

	view := s.schema.Relationship(relName, originDef.Name)
	if view == nil {
		return nil, entities.NewSegmentNotFound(fmt.Sprintf("%s/%s/%s", originDef.Plural, originID, relName))
	}

	targetDef := s.schema.EntityType(view.TargetType())
	created, err := s.entities.Create(ctx, targetDef, raw)
	if err != nil {
		return nil, err
	}

	def := view.Definition
	storedOriginID, storedTargetID := originID, created.ID
	if view.Inverted {
		storedOriginID, storedTargetID = created.ID, originID
	}

	link := &entities.Link{
		ID:           uuid.New().String(),
		Relationship: def.Name,
		OriginType:   def.Origin,
		OriginID:     storedOriginID,
		TargetType:   def.Target,
		TargetID:     storedTargetID,
		CreatedAt:    time.Now(),
	}
	if err := s.store.SaveLink(ctx, link); err != nil {
		// Roll back the create so the operation stays atomic
		_ = s.store.DeleteInstance(ctx, targetDef.Name, created.ID)
		return nil, fmt.Errorf("saving link: %w", err)
	}
	return created, nil
}
