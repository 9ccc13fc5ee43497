// Package rest exposes the entity engine over HTTP. Routes are generic:
// every registered entity type is served through the same four patterns,
// resolved against the schema on each request.
package rest

import (
	"net/http"
	"strings"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/ersonp/restmodel/internal/domain/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Route variable names.
const (
	varEntity = "entity"
	varID     = "id"
	varRel    = "relationship"
	varTarget = "target"
)

// Capability sets per route shape. OPTIONS answers with these, every other
// verb gets a 405 naming them.
var (
	collectionVerbs = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	instanceVerbs   = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	relatedVerbs    = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	linkVerbs       = []string{http.MethodDelete, http.MethodOptions}
)

// Dispatcher routes requests to the entity and relationship services.
type Dispatcher struct {
	schema        *services.SchemaService
	entities      *services.EntityService
	relationships *services.RelationshipService
	validator     *services.Validator
	metrics       *Metrics
	log           *zap.SugaredLogger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	schema *services.SchemaService,
	entityService *services.EntityService,
	relationshipService *services.RelationshipService,
	validator *services.Validator,
	metrics *Metrics,
	log *zap.SugaredLogger,
) *Dispatcher {
	return &Dispatcher{
		schema:        schema,
		entities:      entityService,
		relationships: relationshipService,
		validator:     validator,
		metrics:       metrics,
		log:           log,
	}
}

// Router builds the route table. The scrape endpoint is registered first so
// it wins over the generic collection pattern.
func (d *Dispatcher) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", d.metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/{"+varEntity+"}", d.handleCollection)
	r.HandleFunc("/{"+varEntity+"}/{"+varID+"}", d.handleInstance)
	r.HandleFunc("/{"+varEntity+"}/{"+varID+"}/{"+varRel+"}", d.handleRelated)
	r.HandleFunc("/{"+varEntity+"}/{"+varID+"}/{"+varRel+"}/{"+varTarget+"}", d.handleLink)
	r.NotFoundHandler = http.HandlerFunc(d.handleUnknown)
	return r
}

// Handler wraps the router with logging and metrics. The wrapping happens
// outside the router so the NotFoundHandler is covered too.
func (d *Dispatcher) Handler() http.Handler {
	return d.logRequests(d.metrics.instrument(d.Router()))
}

// pathSegment is the request path without the leading slash, used in
// not-found messages.
func pathSegment(r *http.Request) string {
	segment := strings.Trim(r.URL.Path, "/")
	if segment == "" {
		return "/"
	}
	return segment
}

func (d *Dispatcher) handleUnknown(w http.ResponseWriter, r *http.Request) {
	d.respondError(w, r, entities.NewSegmentNotFound(pathSegment(r)))
}

func (d *Dispatcher) handleCollection(w http.ResponseWriter, r *http.Request) {
	def := d.schema.EntityTypeByPlural(mux.Vars(r)[varEntity])
	if def == nil {
		d.respondError(w, r, entities.NewSegmentNotFound(pathSegment(r)))
		return
	}

	switch r.Method {
	case http.MethodGet:
		filter := services.ParseFilter(def, r.URL.Query())
		instances, err := d.entities.List(r.Context(), def, filter)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondCollection(w, r, http.StatusOK, def, instances)
	case http.MethodPost:
		raw, err := decodeBody(r, def)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		inst, err := d.entities.Create(r.Context(), def, raw)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondInstance(w, r, http.StatusCreated, def, inst)
	case http.MethodOptions:
		d.respondAllow(w, collectionVerbs)
	default:
		d.respondError(w, r, entities.NewMethodNotAllowed(r.Method, collectionVerbs))
	}
}

func (d *Dispatcher) handleInstance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	def := d.schema.EntityTypeByPlural(vars[varEntity])
	if def == nil {
		d.respondError(w, r, entities.NewSegmentNotFound(pathSegment(r)))
		return
	}
	id := vars[varID]

	switch r.Method {
	case http.MethodGet:
		inst, err := d.entities.Get(r.Context(), def, id)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		// A single read still answers in collection shape
		d.respondCollection(w, r, http.StatusOK, def, []*entities.Instance{inst})
	case http.MethodPost, http.MethodPut:
		raw, err := decodeBody(r, def)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		inst, err := d.entities.Update(r.Context(), def, id, raw)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondInstance(w, r, http.StatusOK, def, inst)
	case http.MethodDelete:
		if err := d.entities.Delete(r.Context(), def, id); err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondEmpty(w, http.StatusOK)
	case http.MethodOptions:
		d.respondAllow(w, instanceVerbs)
	default:
		d.respondError(w, r, entities.NewMethodNotAllowed(r.Method, instanceVerbs))
	}
}

func (d *Dispatcher) handleRelated(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	def := d.schema.EntityTypeByPlural(vars[varEntity])
	if def == nil {
		d.respondError(w, r, entities.NewSegmentNotFound(pathSegment(r)))
		return
	}
	id, relName := vars[varID], vars[varRel]

	switch r.Method {
	case http.MethodGet:
		targetDef, related, err := d.relationships.Related(r.Context(), def, id, relName)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondCollection(w, r, http.StatusOK, targetDef, related)
	case http.MethodPost:
		d.handleRelatedPost(w, r, def, id, relName)
	case http.MethodOptions:
		d.respondAllow(w, relatedVerbs)
	default:
		d.respondError(w, r, entities.NewMethodNotAllowed(r.Method, relatedVerbs))
	}
}

// handleRelatedPost links an existing target when the body is a bare
// {"id": ...} reference, and creates-and-links a new target instance
// otherwise.
func (d *Dispatcher) handleRelatedPost(w http.ResponseWriter, r *http.Request, def *entities.EntityType, id, relName string) {
	view := d.schema.Relationship(relName, def.Name)
	if view == nil {
		// The origin instance resolves before the relationship name
		if _, err := d.entities.Get(r.Context(), def, id); err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondError(w, r, entities.NewSegmentNotFound(pathSegment(r)))
		return
	}
	targetDef := d.schema.EntityType(view.TargetType())

	raw, err := decodeBody(r, targetDef)
	if err != nil {
		d.respondError(w, r, err)
		return
	}

	if _, ok := raw[entities.IDFieldName]; ok && len(raw) == 1 {
		targetID, err := d.validator.ValidateLinkRef(raw)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		target, err := d.relationships.Link(r.Context(), def, id, relName, targetID)
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondInstance(w, r, http.StatusCreated, targetDef, target)
		return
	}

	created, err := d.relationships.CreateAndLink(r.Context(), def, id, relName, raw)
	if err != nil {
		d.respondError(w, r, err)
		return
	}
	d.respondInstance(w, r, http.StatusCreated, targetDef, created)
}

func (d *Dispatcher) handleLink(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	def := d.schema.EntityTypeByPlural(vars[varEntity])
	if def == nil {
		d.respondError(w, r, entities.NewSegmentNotFound(pathSegment(r)))
		return
	}

	switch r.Method {
	case http.MethodDelete:
		err := d.relationships.Unlink(r.Context(), def, vars[varID], vars[varRel], vars[varTarget])
		if err != nil {
			d.respondError(w, r, err)
			return
		}
		d.respondEmpty(w, http.StatusOK)
	case http.MethodOptions:
		d.respondAllow(w, linkVerbs)
	default:
		d.respondError(w, r, entities.NewMethodNotAllowed(r.Method, linkVerbs))
	}
}
