package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"codec-generator/internal/decl"
	"codec-generator/internal/names"
)

// Report is the reviewable form of a reconciliation run.
type Report struct {
	Version string       `yaml:"version"`
	Types   []TypeReport `yaml:"types"`
}

// TypeReport lists the final properties of one type, in order.
type TypeReport struct {
	Type       string           `yaml:"type"`
	Properties []PropertyReport `yaml:"properties"`
}

// PropertyReport describes one property.
type PropertyReport struct {
	Key     string    `yaml:"key"`
	JSON    string    `yaml:"json"`
	Tokens  TokenList `yaml:"tokens,omitempty"`
	Sources []string  `yaml:"sources,flow"`
}

// NewTypeReport builds the report entry for t.
func NewTypeReport(t *decl.Type, props []names.Property) TypeReport {
	tr := TypeReport{Type: t.ID.String(), Properties: make([]PropertyReport, 0, len(props))}

	for _, p := range props {
		pr := PropertyReport{
			Key:    p.Key(),
			JSON:   p.JSONName(),
			Tokens: tokens(p.Tokens()),
		}

		for _, k := range p.Sources() {
			pr.Sources = append(pr.Sources, k.String())
		}

		tr.Properties = append(tr.Properties, pr)
	}

	return tr
}

// ExportYAML serializes the type reports.
func ExportYAML(types []TypeReport) ([]byte, error) {
	data, err := yaml.Marshal(Report{Version: "1", Types: types})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return data, nil
}

// WriteReport writes the type reports to path.
func WriteReport(types []TypeReport, path string) error {
	data, err := ExportYAML(types)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}
