package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/ersonp/restmodel/internal/infrastructure/codec"
)

// negotiate picks the response codec from the Accept header.
func negotiate(r *http.Request) codec.Codec {
	return codec.Negotiate(r.Header.Get("Accept"))
}

// decodeBody decodes the request body with the codec named by Content-Type.
func decodeBody(r *http.Request, def *entities.EntityType) (map[string]any, error) {
	c := codec.ForContentType(r.Header.Get("Content-Type"))
	return c.DecodeFields(r.Body, def)
}

func (d *Dispatcher) respondInstance(w http.ResponseWriter, r *http.Request, status int, def *entities.EntityType, inst *entities.Instance) {
	c := negotiate(r)
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	if err := c.EncodeInstance(w, def, inst); err != nil {
		d.log.Errorw("encoding instance response", "error", err)
	}
}

func (d *Dispatcher) respondCollection(w http.ResponseWriter, r *http.Request, status int, def *entities.EntityType, instances []*entities.Instance) {
	c := negotiate(r)
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	if err := c.EncodeCollection(w, def, instances); err != nil {
		d.log.Errorw("encoding collection response", "error", err)
	}
}

func (d *Dispatcher) respondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// respondAllow answers an OPTIONS probe with the route's capability set.
func (d *Dispatcher) respondAllow(w http.ResponseWriter, allowed []string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	w.WriteHeader(http.StatusOK)
}

// respondError maps a failure to its status code and encodes the messages
// in the negotiated media type.
func (d *Dispatcher) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	messages := []string{"internal server error"}

	var vErr *entities.ValidationError
	var pErr *entities.ParseError
	var nfErr *entities.NotFoundError
	var mErr *entities.MethodNotAllowedError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
		messages = vErr.Messages
	case errors.As(err, &pErr):
		status = http.StatusBadRequest
		messages = []string{pErr.Message}
	case errors.As(err, &nfErr):
		status = http.StatusNotFound
		messages = []string{nfErr.Message}
	case errors.As(err, &mErr):
		status = http.StatusMethodNotAllowed
		w.Header().Set("Allow", strings.Join(mErr.Allowed, ", "))
		messages = []string{mErr.Error()}
	default:
		d.log.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	c := negotiate(r)
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	if err := c.EncodeErrors(w, messages); err != nil {
		d.log.Errorw("encoding error response", "error", err)
	}
}
