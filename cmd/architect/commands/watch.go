package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/architect/internal/export"
	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		outDir   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile whenever the stored blueprint changes",
		Long: `Compile the stored blueprint, then recompile on every change until
interrupted. The Redis store pushes changes as they happen; the file store is
polled every --interval.

With --out the artefacts are rewritten on every change.

Examples:
  # Print a line per compiled revision
  architect watch

  # Keep dist/ in sync with the blueprint
  architect watch --out dist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if interval == 0 {
				interval = a.cfg.Watch.Interval
			}

			printer.Info("Watching workspace %s (Ctrl+C to stop)\n", a.cfg.Workspace)
			return watch.Run(ctx, s, interval, a.logger, func(u watch.Update) {
				printer.Println(watch.FormatUpdate(u, time.Now()))
				if outDir == "" {
					return
				}
				if _, err := export.WriteAll(outDir, u.Outputs); err != nil {
					a.logger.Warn("failed to write artefacts", zap.Int64("revision", u.Revision), zap.Error(err))
				}
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Rewrite artefacts into this directory on every change")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (defaults to watch.interval)")
	return cmd
}
