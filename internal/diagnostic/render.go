package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	locColor     = color.New(color.Faint)
)

// Fprint writes every diagnostic, errors first, one per line followed by
// its locations. Colors are applied only when colored is true.
func (d *Diagnostics) Fprint(w io.Writer, colored bool) error {
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if err := diag.fprint(w, colored); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d Diagnostic) fprint(w io.Writer, colored bool) error {
	label := d.Severity.String()
	if colored {
		label = severityColor(d.Severity).Sprint(label)
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", label, d.String()); err != nil {
		return err
	}

	for _, loc := range d.Locations {
		line := "    at " + loc
		if colored {
			line = locColor.Sprint(line)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func severityColor(s DiagnosticSeverity) *color.Color {
	switch s {
	case DiagnosticError:
		return errorColor
	case DiagnosticWarning:
		return warningColor
	default:
		return infoColor
	}
}
