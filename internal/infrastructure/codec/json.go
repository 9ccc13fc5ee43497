package codec

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

// JSONCodec reads and writes application/json bodies.
type JSONCodec struct{}

// ContentType returns the media type the codec produces.
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// DecodeFields decodes a flat JSON object into a raw field map. Numbers are
// kept as json.Number so validation can tell them apart from strings. An
// empty body decodes to an empty map.
func (c *JSONCodec) DecodeFields(r io.Reader, _ *entities.EntityType) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, entities.NewParseError("Could not parse json body: %v", err)
	}
	if raw == nil {
		return map[string]any{}, nil
	}
	return raw, nil
}

// EncodeInstance writes one instance as a flat object of string values.
func (c *JSONCodec) EncodeInstance(w io.Writer, def *entities.EntityType, inst *entities.Instance) error {
	return json.NewEncoder(w).Encode(instanceMap(def, inst))
}

// EncodeCollection writes instances wrapped in the plural name of the type,
// an empty collection as an empty array.
func (c *JSONCodec) EncodeCollection(w io.Writer, def *entities.EntityType, instances []*entities.Instance) error {
	items := make([]map[string]any, 0, len(instances))
	for _, inst := range instances {
		items = append(items, instanceMap(def, inst))
	}
	return json.NewEncoder(w).Encode(map[string]any{def.Plural: items})
}

// EncodeErrors writes failure messages wrapped in errorMessages.
func (c *JSONCodec) EncodeErrors(w io.Writer, messages []string) error {
	return json.NewEncoder(w).Encode(map[string]any{"errorMessages": messages})
}
