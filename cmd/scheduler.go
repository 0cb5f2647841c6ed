package cmd

import (
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// newSchedulerCommand builds the scheduler command: cron-driven crawl
// cycles until interrupted.
func newSchedulerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run crawl cycles on the configured cron schedule",
		Long: `Start a long-running process that executes a full crawl cycle at each
configured cron time. SIGINT or SIGTERM stops the scheduler; a cycle
already in flight finishes its current article first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			if len(d.cfg.Scheduler.Specs) == 0 {
				return fmt.Errorf("no scheduler specs configured")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// One cycle at a time; an overrunning cycle makes the next
			// tick a no-op instead of stacking up.
			var running sync.Mutex

			runner := cron.New()
			for _, spec := range d.cfg.Scheduler.Specs {
				spec := spec
				_, err := runner.AddFunc(spec, func() {
					if !running.TryLock() {
						d.log.Warn("Previous crawl cycle still running, skipping tick", "spec", spec)
						return
					}
					defer running.Unlock()

					window, wErr := d.resolveWindow("", "")
					if wErr != nil {
						d.log.WithError(wErr).Error("Failed to build crawl window")
						return
					}
					if _, cErr := runCrawlCycle(ctx, d, window, ""); cErr != nil && ctx.Err() == nil {
						d.log.WithError(cErr).Error("Scheduled crawl cycle failed")
					}
				})
				if err != nil {
					return fmt.Errorf("invalid cron spec %q: %w", spec, err)
				}
			}

			d.log.Info("Scheduler started", "specs", d.cfg.Scheduler.Specs)
			runner.Start()

			<-ctx.Done()
			d.log.Info("Shutdown signal received, stopping scheduler")
			<-runner.Stop().Done()
			return nil
		},
	}
}
