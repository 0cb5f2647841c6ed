package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hulondalo/warta/internal/extract"
)

// newExtractCommand builds the extract command: ingest one scanned
// newspaper PDF through the hosted extraction service.
func newExtractCommand() *cobra.Command {
	var sourceFlag string

	cmd := &cobra.Command{
		Use:   "extract [pdf-file]",
		Short: "Extract and ingest articles from a scanned newspaper PDF",
		Long: `Upload a newspaper scan to the extraction service, merge articles that
continue across pages, classify each one, and store the results. The
newspaper name and publication date are read from the filename when
possible (for example GP_12.06.2025.pdf).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			if d.cfg.Extractor.BaseURL == "" {
				return fmt.Errorf("extractor.base_url is not configured")
			}

			path := args[0]
			pdf, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := extract.NewClient(d.cfg.Extractor.BaseURL, nil, d.log)
			records, err := client.Process(ctx, pdf, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("extraction failed (status %s): %w", client.Status(), err)
			}

			meta := extract.MetadataFromFilename(path)
			if sourceFlag != "" {
				meta.Source = sourceFlag
			}
			for i := range records {
				if records[i].Sumber == "" {
					records[i].Sumber = meta.Source
				}
			}

			classifier, err := d.buildClassifier()
			if err != nil {
				return err
			}
			repo, db, err := d.openRepository(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			ingestor := extract.NewIngestor(repo, classifier, d.log)
			saved, err := ingestor.Ingest(ctx, records, meta.Date)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %d articles extracted, %d saved\n", filepath.Base(path), len(records), saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFlag, "source", "", "newspaper name override when the filename is ambiguous")

	return cmd
}
