package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Reconcile every value type and report conflicts without generating",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.session(cmd)
			if err != nil {
				return err
			}

			snap, err := s.snapshot(cmd.Context(), root.manifest, args)
			if err != nil {
				return err
			}

			results, diags, err := s.driver().Reconcile(cmd.Context(), snap)
			if err != nil {
				return err
			}

			failed, props := 0, 0

			for _, r := range results {
				if r.Err != nil {
					failed++
				}

				props += len(r.Properties)
			}

			if err := s.report(diags); err != nil {
				fmt.Fprintf(s.stdout, "%d types, %d failed\n", len(results), failed)
				return err
			}

			fmt.Fprintf(s.stdout, "%d types, %d properties, ok\n", len(results), props)

			return nil
		},
	}
}
