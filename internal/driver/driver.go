package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"codec-generator/internal/decl"
	"codec-generator/internal/diagnostic"
	"codec-generator/internal/gen"
	"codec-generator/internal/names"
)

// Diagnostic codes reported by the driver besides the reconciliation codes.
const (
	CodeReconcile    = "Reconcile"
	CodeGenerate     = "Generate"
	CodeWriteOnly    = "WriteOnly"
	CodeNoProperties = "NoProperties"
)

// Options configures a Driver.
type Options struct {
	// Jobs bounds concurrent tasks; 0 or less means GOMAXPROCS.
	Jobs  int
	Names names.Options
	// Logger receives progress; nil discards it.
	Logger *log.Logger
}

// Driver reconciles and generates types in parallel.
type Driver struct {
	opts   Options
	logger *log.Logger
}

// Result is the reconciliation outcome for one type.
type Result struct {
	Type       *decl.Type
	Properties []names.Property
	// Err is non-nil when the type failed; Properties is then nil.
	Err error
}

// New creates a Driver.
func New(opts Options) *Driver {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Driver{opts: opts, logger: logger}
}

// Reconcile computes the property list of every type in snap. A failing type
// does not stop the others; its failure is reported in the diagnostics. The
// returned error is non-nil only when ctx is done.
func (d *Driver) Reconcile(ctx context.Context, snap *decl.Snapshot) ([]Result, diagnostic.Diagnostics, error) {
	results := make([]Result, len(snap.Types))
	// Indices are unique per task, no lock needed.
	diags := make([]diagnostic.Diagnostics, len(snap.Types))

	err := d.each(ctx, len(snap.Types), func(i int) {
		t := snap.Types[i]
		results[i] = Result{Type: t}

		props, err := names.Reconcile(t, d.opts.Names)
		if err != nil {
			results[i].Err = err
			diags[i] = failure(t, err, snap.Table)
			d.logger.Warn("reconciliation failed", "type", t.ID, "error", err)

			return
		}

		results[i].Properties = props
		diags[i] = inspect(t, props)
		d.logger.Debug("reconciled", "type", t.ID, "properties", len(props))
	})
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	return results, merge(diags), nil
}

// Generate emits a file for every successful result, in result order.
// Formatting failures are reported in the diagnostics and the file is left out.
func (d *Driver) Generate(ctx context.Context, g *gen.Generator, results []Result) ([]gen.GeneratedFile, diagnostic.Diagnostics, error) {
	files := make([]*gen.GeneratedFile, len(results))
	diags := make([]diagnostic.Diagnostics, len(results))

	err := d.each(ctx, len(results), func(i int) {
		r := results[i]
		if r.Err != nil {
			return
		}

		file, err := g.GenerateType(r.Type, r.Properties)
		if err != nil {
			diags[i].AddError(CodeGenerate, err.Error(), r.Type.ID.String(), "")
			d.logger.Error("generation failed", "type", r.Type.ID, "error", err)

			return
		}

		files[i] = file
		d.logger.Debug("generated", "type", r.Type.ID, "file", file.Path())
	})
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	out := make([]gen.GeneratedFile, 0, len(files))
	for _, f := range files {
		if f != nil {
			out = append(out, *f)
		}
	}

	return out, merge(diags), nil
}

// each runs task for 0..n-1 with at most Jobs in flight.
func (d *Driver) each(ctx context.Context, n int, task func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(d.opts.Jobs, n))

	for i := range n {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			task(i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("driver canceled: %w", err)
	}

	return ctx.Err()
}

// failure converts a reconciliation error into diagnostics.
func failure(t *decl.Type, err error, table *decl.Table) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	var ee *names.ElementError
	if errors.As(err, &ee) {
		diags.AddError(ee.Code, ee.Message, t.ID.String(), ee.Key,
			table.Describe(ee.Conflict), table.Describe(ee.Previous))

		return diags
	}

	diags.AddError(CodeReconcile, err.Error(), t.ID.String(), "")

	return diags
}

// inspect reports properties that the codec cannot encode.
func inspect(t *decl.Type, props []names.Property) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if len(props) == 0 {
		diags.AddInfo(CodeNoProperties, "type has no properties and encodes as {}", t.ID.String(), "")
	}

	for _, p := range props {
		if !p.Readable() {
			diags.AddWarning(CodeWriteOnly, "property has no getter or exported field and is never encoded",
				t.ID.String(), p.Key())
		}
	}

	return diags
}

func merge(parts []diagnostic.Diagnostics) diagnostic.Diagnostics {
	var out diagnostic.Diagnostics
	for _, p := range parts {
		out.Merge(p)
	}

	return out
}
