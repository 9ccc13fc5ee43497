// Package analyzers provides all custom static analyzers for restmodel.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/restmodel/tools/restmodel-lint/analyzers/loopcall"
	"github.com/ersonp/restmodel/tools/restmodel-lint/analyzers/regexloop"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		regexloop.Analyzer,
	}
}
