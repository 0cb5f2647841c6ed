package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSourcesCommand builds the sources command group for catalogue
// inspection.
func newSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Inspect the configured news sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the configured sources",
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			catalogue, err := d.loadCatalogue()
			if err != nil {
				return err
			}

			for _, src := range catalogue.Sources {
				fmt.Printf("%-40s %-10s categories=%d max_pages=%d delay=%s\n",
					src.Name, src.Pagination, len(src.CategoryURLs), src.MaxPages, src.Delay.Std())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the sources catalogue",
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			catalogue, err := d.loadCatalogue()
			if err != nil {
				return err
			}
			fmt.Printf("catalogue OK: %d sources\n", len(catalogue.Sources))
			return nil
		},
	})

	return cmd
}
