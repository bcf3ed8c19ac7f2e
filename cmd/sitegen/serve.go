package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sitegen/internal/http"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it together with the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(appConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		// A failed first build still serves whatever output exists.
		if result, err := a.generator.Build(ctx); err != nil {
			slog.ErrorContext(ctx, "Initial build failed", "error", err)
		} else {
			slog.InfoContext(ctx, "Initial build completed",
				"build_id", result.BuildID,
				"pages", result.Pages,
				"problems", len(result.Problems),
			)
		}

		router := http.NewRouter(&http.Deps{
			Builder:         a.generator,
			Snapshots:       a.generator,
			DB:              a.db,
			Builds:          a.builds,
			Entries:         a.entries,
			URLs:            a.urls,
			PageSize:        appConfig.PageSize,
			RebuildInterval: appConfig.RebuildInterval,
			OutputDir:       appConfig.OutputDir,
		})

		port := appConfig.APIPort
		if servePort != "" {
			port = servePort
		}
		server := &nethttp.Server{
			Addr:              ":" + port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Starting server", "addr", server.Addr, "output", appConfig.OutputDir)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			slog.Info("Shutting down server")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides API_PORT)")
}
