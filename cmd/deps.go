package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hulondalo/warta/internal/config"
	"github.com/hulondalo/warta/internal/crawler"
	"github.com/hulondalo/warta/internal/database"
	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
	"github.com/hulondalo/warta/internal/sector"
	"github.com/hulondalo/warta/internal/sites"
	"github.com/hulondalo/warta/internal/sources"
)

// deps bundles the dependencies shared by every command.
type deps struct {
	cfg *config.Config
	log logger.Interface
}

// newDeps loads configuration and builds the logger.
func newDeps() (*deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	opts := cfg.LoggerOptions()
	if debug {
		opts.Level = "debug"
		opts.Development = true
	}
	log, err := logger.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &deps{cfg: cfg, log: log}, nil
}

// openRepository connects to PostgreSQL and ensures the schema. The caller
// closes the returned handle.
func (d *deps) openRepository(ctx context.Context) (*database.ArticleRepository, *sqlx.DB, error) {
	db, err := database.NewPostgresConnection(d.cfg.DatabaseOptions(), d.log)
	if err != nil {
		return nil, nil, err
	}

	repo := database.NewArticleRepository(db, d.log)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db, nil
}

// buildClassifier creates the sector classifier, from the configured rules
// file when one is set and the built-in keyword rules otherwise.
func (d *deps) buildClassifier() (*sector.Classifier, error) {
	rules := sector.DefaultRules()
	if path := d.cfg.Crawler.RulesFile; path != "" {
		loaded, err := sector.LoadRules(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load classifier rules: %w", err)
		}
		rules = loaded
	}

	classifier, err := sector.NewClassifier(rules, d.log)
	if err != nil {
		return nil, err
	}
	d.log.Debug("Classifier ready",
		"rules", classifier.RuleCount(),
		"keywords", classifier.KeywordCount(),
	)
	return classifier, nil
}

// loadCatalogue reads and validates the sources catalogue.
func (d *deps) loadCatalogue() (*sources.Catalogue, error) {
	catalogue, err := sources.Load(d.cfg.Crawler.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	return catalogue, nil
}

// buildTargets turns catalogue entries into crawl targets, restricted to
// one source when filter is non-empty.
func (d *deps) buildTargets(filter string) ([]crawler.Target, error) {
	catalogue, err := d.loadCatalogue()
	if err != nil {
		return nil, err
	}

	selected := catalogue.Sources
	if filter != "" {
		src := catalogue.ByName(filter)
		if src == nil {
			return nil, fmt.Errorf("unknown source %q", filter)
		}
		selected = []sources.Source{*src}
	}

	targets := make([]crawler.Target, 0, len(selected))
	for _, src := range selected {
		targets = append(targets, crawler.Target{
			Adapter:    sites.NewSelectorAdapter(src, nil, d.log),
			Categories: src.CategoryURLs,
		})
	}
	return targets, nil
}

// resolveWindow builds the crawl window from the --start/--end flags,
// falling back to the configured trailing window ending today.
func (d *deps) resolveWindow(startFlag, endFlag string) (domain.Window, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -d.cfg.DefaultWindowDays())
	end := now

	if startFlag != "" {
		parsed, err := time.Parse(domain.DateLayout, startFlag)
		if err != nil {
			return domain.Window{}, fmt.Errorf("invalid --start date %q: %w", startFlag, err)
		}
		start = parsed
	}
	if endFlag != "" {
		parsed, err := time.Parse(domain.DateLayout, endFlag)
		if err != nil {
			return domain.Window{}, fmt.Errorf("invalid --end date %q: %w", endFlag, err)
		}
		end = parsed
	}

	window := domain.NewWindow(start, end)
	if !window.Valid() {
		return domain.Window{}, fmt.Errorf("%w: %s after %s",
			crawler.ErrInvalidWindow, window.Start.Format(domain.DateLayout), window.End.Format(domain.DateLayout))
	}
	return window, nil
}
