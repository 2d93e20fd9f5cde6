package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codec-generator/internal/gen"
)

type genOptions struct {
	outDir string
	dryRun bool
}

func newGenCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate MarshalJSON/UnmarshalJSON for every value type",
		Long: `Reconcile every value type and write one <type>_codec.go file per type
into the type's package directory. Types that fail reconciliation are
reported and skipped; the command exits non-zero when any type failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.session(cmd)
			if err != nil {
				return err
			}

			snap, err := s.snapshot(cmd.Context(), root.manifest, args)
			if err != nil {
				return err
			}

			d := s.driver()

			results, diags, err := d.Reconcile(cmd.Context(), snap)
			if err != nil {
				return err
			}

			files, genDiags, err := d.Generate(cmd.Context(), gen.NewGenerator(s.cfg.GeneratorConfig(opts.outDir)), results)
			if err != nil {
				return err
			}

			diags.Merge(genDiags)

			if opts.dryRun {
				for _, f := range files {
					fmt.Fprintf(s.stdout, "// %s\n%s\n", f.Path(), f.Content)
				}
			} else {
				if err := gen.WriteFiles(files); err != nil {
					return err
				}

				for _, f := range files {
					s.logger.Info("wrote", "file", f.Path())
				}
			}

			return s.report(diags)
		},
	}

	cmd.Flags().StringVar(&opts.outDir, "out", "", "write every file to this directory instead of the type's package")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print generated files instead of writing them")

	return cmd
}
