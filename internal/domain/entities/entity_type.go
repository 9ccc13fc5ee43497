// Package entities contains core domain data structures.
package entities

// IDFieldName is the reserved name of the identifier field every entity type
// carries.
const IDFieldName = "id"

// EntityType describes one kind of entity the engine manages: its singular
// name, the plural used for collection keys and URL segments, and the ordered
// field definitions every instance must satisfy. Definitions are immutable
// once registered.
type EntityType struct {
	Name   string            `json:"name"`
	Plural string            `json:"plural"`
	Fields []FieldDefinition `json:"fields"`
}

// Field returns the definition of the named field, or nil if the type has no
// such field.
func (t *EntityType) Field(name string) *FieldDefinition {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// FieldNames returns the field names in definition order.
func (t *EntityType) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}
