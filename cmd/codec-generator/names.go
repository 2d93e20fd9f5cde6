package main

import (
	"github.com/spf13/cobra"

	"codec-generator/internal/manifest"
)

type namesOptions struct {
	out          string
	dumpManifest string
}

func newNamesCmd(root *rootOptions) *cobra.Command {
	opts := &namesOptions{}

	cmd := &cobra.Command{
		Use:   "names [packages]",
		Short: "Print the reconciled property list of every value type as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.session(cmd)
			if err != nil {
				return err
			}

			snap, err := s.snapshot(cmd.Context(), root.manifest, args)
			if err != nil {
				return err
			}

			if opts.dumpManifest != "" {
				if err := manifest.WriteFile(manifest.FromTypes(snap.Types), opts.dumpManifest); err != nil {
					return err
				}
			}

			results, diags, err := s.driver().Reconcile(cmd.Context(), snap)
			if err != nil {
				return err
			}

			var reports []manifest.TypeReport

			for _, r := range results {
				if r.Err == nil {
					reports = append(reports, manifest.NewTypeReport(r.Type, r.Properties))
				}
			}

			if opts.out != "" {
				if err := manifest.WriteReport(reports, opts.out); err != nil {
					return err
				}
			} else {
				data, err := manifest.ExportYAML(reports)
				if err != nil {
					return err
				}

				if _, err := s.stdout.Write(data); err != nil {
					return err
				}
			}

			return s.report(diags)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&opts.dumpManifest, "dump-manifest", "", "also write the loaded declarations as a manifest")

	return cmd
}
