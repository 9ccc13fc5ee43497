package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

// Validator checks raw decoded field maps against entity type definitions
// and produces the string-valued field maps the store keeps. Raw values come
// from the wire codecs: JSON bodies decode to bool, string and json.Number,
// XML bodies to string with boolean tokens pre-coerced to bool.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreate validates a create body and returns the full field map for
// the new instance, with absent fields set to their defaults.
func (v *Validator) ValidateCreate(def *entities.EntityType, raw map[string]any) (map[string]string, error) {
	if _, ok := raw[entities.IDFieldName]; ok {
		return nil, entities.NewValidationError("Not allowed to create with id")
	}

	fields, messages := coerce(def, raw)

	for _, f := range def.Fields {
		if f.Kind == entities.FieldID {
			continue
		}
		value, ok := fields[f.Name]
		if !ok {
			if f.Mandatory {
				messages = append(messages, mandatoryMessage(f.Name))
				continue
			}
			fields[f.Name] = f.DefaultValue()
			continue
		}
		if f.Mandatory && value == "" {
			messages = append(messages, mandatoryMessage(f.Name))
		}
	}

	if len(messages) > 0 {
		return nil, entities.NewValidationError(messages...)
	}
	return fields, nil
}

// ValidateUpdate validates an amend body and returns the merged field map:
// fields absent from the body keep the values of the existing instance.
func (v *Validator) ValidateUpdate(def *entities.EntityType, existing *entities.Instance, raw map[string]any) (map[string]string, error) {
	if _, ok := raw[entities.IDFieldName]; ok {
		return nil, entities.NewValidationError("Not allowed to amend with id")
	}

	changed, messages := coerce(def, raw)

	merged := make(map[string]string, len(existing.Fields))
	for name, value := range existing.Fields {
		merged[name] = value
	}
	for name, value := range changed {
		merged[name] = value
	}

	for _, f := range def.Fields {
		if f.Kind == entities.FieldID || !f.Mandatory {
			continue
		}
		if merged[f.Name] == "" {
			messages = append(messages, mandatoryMessage(f.Name))
		}
	}

	if len(messages) > 0 {
		return nil, entities.NewValidationError(messages...)
	}
	return merged, nil
}

// ValidateLinkRef extracts the target instance id from a relationship link
// body of the form {"id": ...}. A string is taken verbatim; a JSON integer
// is normalized to its decimal string.
func (v *Validator) ValidateLinkRef(raw map[string]any) (string, error) {
	switch value := raw[entities.IDFieldName].(type) {
	case string:
		return value, nil
	case json.Number:
		if _, err := value.Int64(); err != nil {
			return "", entities.NewValidationError(kindMessage(entities.IDFieldName, entities.FieldID))
		}
		return value.String(), nil
	default:
		return "", entities.NewValidationError(kindMessage(entities.IDFieldName, entities.FieldID))
	}
}

// coerce checks every supplied value against its field definition and
// renders it to the stored string form. Keys are visited in sorted order so
// failure messages are deterministic.
func coerce(def *entities.EntityType, raw map[string]any) (map[string]string, []string) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]string, len(raw))
	var messages []string
	for _, name := range names {
		f := def.Field(name)
		if f == nil || f.Kind == entities.FieldID {
			messages = append(messages, fmt.Sprintf("Could not find field: %s", name))
			continue
		}

		switch f.Kind {
		case entities.FieldBoolean:
			value, ok := raw[name].(bool)
			if !ok {
				messages = append(messages, kindMessage(name, f.Kind))
				continue
			}
			fields[name] = fmt.Sprintf("%t", value)
		case entities.FieldString:
			value, ok := raw[name].(string)
			if !ok {
				messages = append(messages, kindMessage(name, f.Kind))
				continue
			}
			fields[name] = value
		}
	}
	return fields, messages
}

func mandatoryMessage(name string) string {
	return fmt.Sprintf("Failed Validation: %s : field is mandatory", name)
}

func kindMessage(name string, kind entities.FieldKind) string {
	return fmt.Sprintf("Failed Validation: %s should be %s", name, kind)
}
