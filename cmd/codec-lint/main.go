// codec-lint reports codec property conflicts and misplaced codec
// directives using the go/analysis framework.
//
// Usage:
//
//	codec-lint [-directive-prefix=codec] [-getter-prefixes=Get,Is] ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"codec-generator/internal/lint"
)

func main() {
	singlechecker.Main(lint.Analyzer)
}
