// Package codec provides the wire codecs for request and response bodies.
package codec

import (
	"io"
	"strings"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

// Codec decodes request bodies into raw field maps and encodes instances,
// collections and errors. Decoding is schema-aware so that stringly typed
// wires can surface genuine booleans to validation; encoding renders every
// field value as a string.
type Codec interface {
	ContentType() string
	DecodeFields(r io.Reader, def *entities.EntityType) (map[string]any, error)
	EncodeInstance(w io.Writer, def *entities.EntityType, inst *entities.Instance) error
	EncodeCollection(w io.Writer, def *entities.EntityType, instances []*entities.Instance) error
	EncodeErrors(w io.Writer, messages []string) error
}

// Negotiate returns the codec for an Accept header. The first recognized
// media type wins; absent, wildcard and unknown values fall back to JSON.
func Negotiate(accept string) Codec {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.Index(mediaType, ";"); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch strings.ToLower(mediaType) {
		case "application/xml", "text/xml":
			return &XMLCodec{}
		case "application/json", "*/*", "application/*":
			return &JSONCodec{}
		}
	}
	return &JSONCodec{}
}

// ForContentType returns the codec for a Content-Type header. Anything that
// is not XML is treated as JSON.
func ForContentType(contentType string) Codec {
	mediaType := strings.TrimSpace(contentType)
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	switch strings.ToLower(mediaType) {
	case "application/xml", "text/xml":
		return &XMLCodec{}
	default:
		return &JSONCodec{}
	}
}

// instanceMap renders an instance as a map of string values covering every
// field of the definition.
func instanceMap(def *entities.EntityType, inst *entities.Instance) map[string]any {
	out := make(map[string]any, len(def.Fields))
	for _, f := range def.Fields {
		if f.Kind == entities.FieldID {
			out[f.Name] = inst.ID
			continue
		}
		out[f.Name] = inst.Fields[f.Name]
	}
	return out
}
