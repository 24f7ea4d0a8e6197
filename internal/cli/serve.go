package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harits/aksi/internal/config"
	"github.com/harits/aksi/internal/logger"
	"github.com/harits/aksi/pkg/gateway"
	"github.com/harits/aksi/pkg/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway and scheduled dispatches",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.Config.Gateway.Enabled {
			return fmt.Errorf("gateway is disabled in config")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		entries := make([]scheduler.Entry, 0, len(app.Config.Schedules))
		for _, s := range app.Config.Schedules {
			entries = append(entries, scheduler.Entry{Cron: s.Cron, Query: s.Query})
		}
		sched, err := scheduler.New(app.Dispatcher, entries)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		// Log-level changes apply without a restart.
		if path, perr := config.NewLoader(cfgFile).Path(); perr == nil {
			if _, serr := os.Stat(path); serr == nil {
				go func() {
					err := config.Watch(ctx, path, func(cfg *config.Config) {
						if err := logger.SetLevel(cfg.Logging.Level); err != nil {
							log.Warn().Err(err).Msg("Ignoring log level change")
						}
					})
					if err != nil && ctx.Err() == nil {
						log.Warn().Err(err).Msg("Config watcher stopped")
					}
				}()
			}
		}

		server := gateway.New(app.Config.Gateway.Addr, app.Dispatcher, app.Handle)

		errChan := make(chan error, 1)
		go func() {
			errChan <- server.Start()
		}()

		select {
		case err := <-errChan:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
