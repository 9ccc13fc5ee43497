package codec

import (
	"bytes"
	"io"

	"github.com/clbanning/mxj/v2"
	"github.com/ersonp/restmodel/internal/domain/entities"
)

// XMLCodec reads and writes application/xml bodies.
type XMLCodec struct{}

// ContentType returns the media type the codec produces.
func (c *XMLCodec) ContentType() string {
	return "application/xml"
}

// DecodeFields decodes an XML body into a raw field map. The root element
// must carry the singular type name with one child element per field. The
// wire is stringly typed, so the tokens true and false are pre-coerced to
// booleans for BOOLEAN fields before validation. An empty body decodes to an
// empty map.
func (c *XMLCodec) DecodeFields(r io.Reader, def *entities.EntityType) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, entities.NewParseError("Could not parse xml body: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	parsed, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, entities.NewParseError("Could not parse xml body: %v", err)
	}

	root, ok := parsed[def.Name]
	if !ok {
		return nil, entities.NewParseError("Could not parse xml body: expected root element %s", def.Name)
	}

	children, ok := root.(map[string]any)
	if !ok {
		// Self-closing or text-only root carries no fields
		return map[string]any{}, nil
	}

	raw := make(map[string]any, len(children))
	for name, value := range children {
		text, ok := value.(string)
		if !ok {
			if value == nil {
				text = ""
			} else {
				return nil, entities.NewParseError("Could not parse xml body: element %s is not a simple value", name)
			}
		}
		if f := def.Field(name); f != nil && f.Kind == entities.FieldBoolean {
			if text == "true" || text == "false" {
				raw[name] = text == "true"
				continue
			}
		}
		raw[name] = text
	}
	return raw, nil
}

// EncodeInstance writes one instance under its singular element name.
func (c *XMLCodec) EncodeInstance(w io.Writer, def *entities.EntityType, inst *entities.Instance) error {
	body := mxj.Map{def.Name: instanceMap(def, inst)}
	return c.write(w, body)
}

// EncodeCollection writes instances as repeated singular elements inside the
// plural element, an empty collection as an empty plural element.
func (c *XMLCodec) EncodeCollection(w io.Writer, def *entities.EntityType, instances []*entities.Instance) error {
	items := make([]any, 0, len(instances))
	for _, inst := range instances {
		items = append(items, instanceMap(def, inst))
	}
	body := mxj.Map{def.Plural: map[string]any{def.Name: items}}
	return c.write(w, body)
}

// EncodeErrors writes failure messages as repeated errorMessage elements.
func (c *XMLCodec) EncodeErrors(w io.Writer, messages []string) error {
	items := make([]any, 0, len(messages))
	for _, message := range messages {
		items = append(items, message)
	}
	body := mxj.Map{"errorMessages": map[string]any{"errorMessage": items}}
	return c.write(w, body)
}

func (c *XMLCodec) write(w io.Writer, body mxj.Map) error {
	data, err := body.Xml()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
