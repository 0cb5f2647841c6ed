package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hulondalo/warta/internal/crawler"
	"github.com/hulondalo/warta/internal/dedupe"
	"github.com/hulondalo/warta/internal/domain"
)

// newCrawlCommand builds the crawl command: one full cycle over the
// configured sources.
func newCrawlCommand() *cobra.Command {
	var (
		startFlag  string
		endFlag    string
		sourceFlag string
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run one crawl cycle over the configured sources",
		Long: `Crawl every configured news site for articles published inside the
date window. Without flags the window covers the configured number of
trailing days ending today. Articles already stored are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			window, err := d.resolveWindow(startFlag, endFlag)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := runCrawlCycle(ctx, d, window, sourceFlag)
			if report != nil {
				for source, count := range report.SavedBySource {
					fmt.Printf("%s: %d new articles\n", source, count)
				}
				fmt.Printf("total: %d saved, %d duplicates, %d skipped in %s\n",
					report.Saved, report.Duplicates, report.Skipped, report.Elapsed.Round(time.Millisecond))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "window start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "window end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "crawl a single source by name")

	return cmd
}

// runCrawlCycle wires storage, dedup, classifier, and targets, then runs
// the controller once. The scheduler reuses it for every tick.
func runCrawlCycle(ctx context.Context, d *deps, window domain.Window, sourceFilter string) (*crawler.Report, error) {
	targets, err := d.buildTargets(sourceFilter)
	if err != nil {
		return nil, err
	}

	classifier, err := d.buildClassifier()
	if err != nil {
		return nil, err
	}

	repo, db, err := d.openRepository(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	titles, links, err := repo.LoadExistingKeys(ctx)
	if err != nil {
		return nil, err
	}
	index := dedupe.NewIndex()
	index.Seed(titles, links)
	d.log.Info("Dedup index seeded", "titles", index.Len())

	controller := crawler.NewController(repo, classifier, index, d.log)
	return controller.Run(ctx, targets, window)
}
