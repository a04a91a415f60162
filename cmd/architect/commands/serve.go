package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blueprint and compiled artefacts over HTTP",
		Long: `Serve the stored blueprint over HTTP until interrupted.

Endpoints:
  GET  /healthz               store connectivity
  GET  /blueprint             current blueprint (JSON)
  PUT  /blueprint             replace the blueprint (JSON or YAML body)
  POST /blueprint/reset       restore the sample blueprint
  GET  /outputs               all three artefacts (JSON)
  GET  /outputs/{name}        one artefact as a download
  GET  /stats                 headline stats and hooks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if addr == "" {
				addr = a.cfg.Serve.Addr
			}

			srv := server.New(s, a.logger)
			bound, err := srv.Start(addr)
			if err != nil {
				return printer.Error(
					"cannot listen",
					err.Error(),
					[]string{"Pick another address:\n  architect serve --addr 127.0.0.1:8081"},
				)
			}
			printer.Success("Serving workspace %s on http://%s\n", a.cfg.Workspace, bound)

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("server shutdown incomplete", zap.Error(err))
				return err
			}
			printer.Info("Server stopped\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to serve.addr)")
	return cmd
}
