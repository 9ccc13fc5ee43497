package entities

// FieldKind is the semantic type of an entity field.
type FieldKind string

// Supported field kinds. Every entity type has exactly one ID field; the
// engine assigns its value and clients can never write it.
const (
	FieldString  FieldKind = "STRING"
	FieldBoolean FieldKind = "BOOLEAN"
	FieldID      FieldKind = "ID"
)

// FieldDefinition describes a single field of an entity type.
type FieldDefinition struct {
	Name      string    `json:"name"`
	Kind      FieldKind `json:"kind"`
	Mandatory bool      `json:"mandatory"`
	Default   string    `json:"default,omitempty"`
}

// DefaultValue returns the value a new instance carries when the client does
// not supply the field. BOOLEAN fields default to "false" unless overridden.
func (f FieldDefinition) DefaultValue() string {
	if f.Default != "" {
		return f.Default
	}
	if f.Kind == FieldBoolean {
		return "false"
	}
	return ""
}
