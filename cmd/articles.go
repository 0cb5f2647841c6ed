package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newArticlesCommand builds the articles command group for inspecting
// stored articles.
func newArticlesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Inspect stored articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var (
		startFlag string
		endFlag   string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored articles inside a date window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			window, err := d.resolveWindow(startFlag, endFlag)
			if err != nil {
				return err
			}

			repo, db, err := d.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			articles, err := repo.ListByWindow(cmd.Context(), window)
			if err != nil {
				return err
			}
			for _, a := range articles {
				fmt.Printf("%s  %-6s %-25s %s\n", a.DateString(), a.KategoriBPS, a.Source, a.Title)
			}
			fmt.Printf("%d articles\n", len(articles))
			return nil
		},
	}
	list.Flags().StringVar(&startFlag, "start", "", "window start date (YYYY-MM-DD)")
	list.Flags().StringVar(&endFlag, "end", "", "window end date (YYYY-MM-DD)")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show stored article counts per source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			repo, db, err := d.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := repo.CountBySource(cmd.Context())
			if err != nil {
				return err
			}
			for source, count := range counts {
				fmt.Printf("%-40s %d\n", source, count)
			}
			return nil
		},
	})

	return cmd
}
