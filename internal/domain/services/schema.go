// Package services contains the domain logic of the entity engine.
package services

import (
	"fmt"
	"regexp"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

var (
	// validTypeNameRegex allows lowercase alphanumerics and underscores only.
	validTypeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	// validFieldNameRegex additionally allows camel case field names.
	validFieldNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	// validRelationshipNameRegex additionally allows hyphens.
	validRelationshipNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// relationKey identifies a relationship as seen from one side.
type relationKey struct {
	name   string
	origin string
}

// RelationshipView resolves a relationship name as seen from one side. When
// Inverted is true the view reads the definition from the target side:
// traversal origin and target are swapped relative to stored link
// orientation.
type RelationshipView struct {
	Definition *entities.RelationshipType
	Inverted   bool
}

// Name returns the relationship name as seen from this side.
func (v *RelationshipView) Name() string {
	if v.Inverted {
		return v.Definition.Inverse
	}
	return v.Definition.Name
}

// OriginType returns the entity type traversal starts from on this side.
func (v *RelationshipView) OriginType() string {
	if v.Inverted {
		return v.Definition.Target
	}
	return v.Definition.Origin
}

// TargetType returns the entity type traversal arrives at on this side.
func (v *RelationshipView) TargetType() string {
	if v.Inverted {
		return v.Definition.Origin
	}
	return v.Definition.Target
}

// SchemaService is the registry of entity type and relationship type
// definitions. Registration happens once at boot before the engine serves
// requests; the lookup methods are safe for unsynchronized concurrent use
// afterwards.
type SchemaService struct {
	types     map[string]*entities.EntityType
	byPlural  map[string]*entities.EntityType
	relations map[relationKey]*RelationshipView
	typeOrder []string
	relOrder  []relationKey
}

// NewSchemaService creates an empty SchemaService.
func NewSchemaService() *SchemaService {
	return &SchemaService{
		types:     make(map[string]*entities.EntityType),
		byPlural:  make(map[string]*entities.EntityType),
		relations: make(map[relationKey]*RelationshipView),
	}
}

// LoadDefaults registers the sample todo list model.
func (s *SchemaService) LoadDefaults() error {
	for _, def := range entities.DefaultEntityTypes {
		if err := s.RegisterEntityType(def); err != nil {
			return fmt.Errorf("registering entity type %s: %w", def.Name, err)
		}
	}
	for _, def := range entities.DefaultRelationshipTypes {
		if err := s.RegisterRelationshipType(def); err != nil {
			return fmt.Errorf("registering relationship %s: %w", def.Name, err)
		}
	}
	return nil
}

// RegisterEntityType validates and registers an entity type definition.
func (s *SchemaService) RegisterEntityType(def entities.EntityType) error {
	if !validTypeNameRegex.MatchString(def.Name) {
		return fmt.Errorf("invalid entity type name '%s': must be lowercase alphanumeric with underscores, starting with a letter", def.Name)
	}
	if !validTypeNameRegex.MatchString(def.Plural) {
		return fmt.Errorf("invalid plural '%s' for entity type '%s'", def.Plural, def.Name)
	}
	if _, ok := s.types[def.Name]; ok {
		return fmt.Errorf("entity type '%s' already exists", def.Name)
	}
	if other, ok := s.byPlural[def.Plural]; ok {
		return fmt.Errorf("plural '%s' already used by entity type '%s'", def.Plural, other.Name)
	}

	if err := validateFields(def); err != nil {
		return err
	}

	defCopy := def
	s.types[def.Name] = &defCopy
	s.byPlural[def.Plural] = &defCopy
	s.typeOrder = append(s.typeOrder, def.Name)
	return nil
}

// validateFields checks the field definitions of an entity type: names must
// be valid and unique, kinds known, and exactly one ID field named "id" must
// be present and not mandatory.
func validateFields(def entities.EntityType) error {
	seen := make(map[string]bool, len(def.Fields))
	idFields := 0
	for _, f := range def.Fields {
		if !validFieldNameRegex.MatchString(f.Name) {
			return fmt.Errorf("invalid field name '%s' in entity type '%s'", f.Name, def.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field '%s' in entity type '%s'", f.Name, def.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case entities.FieldString, entities.FieldBoolean:
		case entities.FieldID:
			idFields++
			if f.Name != entities.IDFieldName {
				return fmt.Errorf("ID field of entity type '%s' must be named '%s'", def.Name, entities.IDFieldName)
			}
			if f.Mandatory {
				return fmt.Errorf("ID field of entity type '%s' cannot be mandatory", def.Name)
			}
		default:
			return fmt.Errorf("unknown field kind '%s' for field '%s' in entity type '%s'", f.Kind, f.Name, def.Name)
		}
	}
	if idFields != 1 {
		return fmt.Errorf("entity type '%s' must define exactly one ID field, got %d", def.Name, idFields)
	}
	return nil
}

// RegisterRelationshipType validates and registers a relationship type
// definition, making it resolvable from both sides.
func (s *SchemaService) RegisterRelationshipType(def entities.RelationshipType) error {
	if !validRelationshipNameRegex.MatchString(def.Name) {
		return fmt.Errorf("invalid relationship name '%s'", def.Name)
	}
	if !validRelationshipNameRegex.MatchString(def.Inverse) {
		return fmt.Errorf("invalid inverse name '%s' for relationship '%s'", def.Inverse, def.Name)
	}
	if _, ok := s.types[def.Origin]; !ok {
		return fmt.Errorf("relationship '%s' references unknown origin type '%s'", def.Name, def.Origin)
	}
	if _, ok := s.types[def.Target]; !ok {
		return fmt.Errorf("relationship '%s' references unknown target type '%s'", def.Name, def.Target)
	}

	forward := relationKey{name: def.Name, origin: def.Origin}
	inverse := relationKey{name: def.Inverse, origin: def.Target}
	if _, ok := s.relations[forward]; ok {
		return fmt.Errorf("relationship '%s' from '%s' already exists", def.Name, def.Origin)
	}
	if _, ok := s.relations[inverse]; ok {
		return fmt.Errorf("relationship '%s' from '%s' already exists", def.Inverse, def.Target)
	}
	if forward == inverse {
		return fmt.Errorf("relationship '%s' from '%s' is its own inverse", def.Name, def.Origin)
	}

	defCopy := def
	s.relations[forward] = &RelationshipView{Definition: &defCopy}
	s.relations[inverse] = &RelationshipView{Definition: &defCopy, Inverted: true}
	s.relOrder = append(s.relOrder, forward, inverse)
	return nil
}

// EntityType returns the definition with the given singular name, or nil if
// not registered.
func (s *SchemaService) EntityType(name string) *entities.EntityType {
	return s.types[name]
}

// EntityTypeByPlural returns the definition with the given plural name, or
// nil if not registered.
func (s *SchemaService) EntityTypeByPlural(plural string) *entities.EntityType {
	return s.byPlural[plural]
}

// EntityTypes returns all registered definitions in registration order.
func (s *SchemaService) EntityTypes() []*entities.EntityType {
	result := make([]*entities.EntityType, len(s.typeOrder))
	for i, name := range s.typeOrder {
		result[i] = s.types[name]
	}
	return result
}

// Relationship resolves a relationship name as seen from the given origin
// type, covering both forward and inverse names. Returns nil if no
// registered relationship matches.
func (s *SchemaService) Relationship(name, originType string) *RelationshipView {
	return s.relations[relationKey{name: name, origin: originType}]
}

// RelationshipsFrom returns every relationship view whose traversal starts
// at the given type, in registration order.
func (s *SchemaService) RelationshipsFrom(typeName string) []*RelationshipView {
	var result []*RelationshipView
	for _, key := range s.relOrder {
		if key.origin == typeName {
			result = append(result, s.relations[key])
		}
	}
	return result
}
