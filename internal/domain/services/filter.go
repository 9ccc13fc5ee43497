package services

import (
	"net/url"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

type filterClause struct {
	field string
	value string
}

// Filter matches instances against exact field values taken from query
// parameters. All clauses must match.
type Filter struct {
	clauses []filterClause
}

// ParseFilter builds a Filter from query parameters. Parameters that do not
// name a field of the entity type are ignored; the first value wins when a
// parameter repeats.
func ParseFilter(def *entities.EntityType, params url.Values) *Filter {
	f := &Filter{}
	for _, field := range def.Fields {
		values, ok := params[field.Name]
		if !ok || len(values) == 0 {
			continue
		}
		f.clauses = append(f.clauses, filterClause{field: field.Name, value: values[0]})
	}
	return f
}

// Empty reports whether the filter has no clauses.
func (f *Filter) Empty() bool {
	return len(f.clauses) == 0
}

// Matches reports whether the instance satisfies every clause. Values are
// compared against the rendered string form, the id clause against the
// instance id.
func (f *Filter) Matches(inst *entities.Instance) bool {
	for _, clause := range f.clauses {
		if clause.field == entities.IDFieldName {
			if inst.ID != clause.value {
				return false
			}
			continue
		}
		if inst.Fields[clause.field] != clause.value {
			return false
		}
	}
	return true
}
