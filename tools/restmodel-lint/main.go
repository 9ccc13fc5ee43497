// restmodel-lint is a custom static analyzer for restmodel performance patterns.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/restmodel/tools/restmodel-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
