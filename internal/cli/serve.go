package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/witherkv/wither/internal/server"
	"github.com/witherkv/wither/pkg/clock"
)

func newServeCmd() *cobra.Command {
	opts := &storeOptions{}
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the store over HTTP",
		Long: `Starts an HTTP server exposing the store: a REST surface under /api/items,
Prometheus metrics under /metrics, and a live dashboard under /dashboard.`,
		Example: `  wither serve --addr :8080 --backend sqlite --sqlite-path wither.db
  wither serve --config wither.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			st, cleanup, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := server.New(cfg.Server.Addr, st, clock.NewRealClock())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
