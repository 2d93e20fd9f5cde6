package lint_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"codec-generator/internal/lint"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, lint.Analyzer, "accounts", "clean")
}
