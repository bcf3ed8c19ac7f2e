package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sitegen/internal/config"
)

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Render a directory of markdown into a static website",
	Long: `sitegen parses markdown content with frontmatter, derives tag, author,
archive and stream indexes, resolves back-links and related content, and
renders every page through HTML templates into an output directory.

Configuration is read from the environment (and a .env file when present);
site metadata comes from the YAML site file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appConfig = cfg

		slog.SetDefault(cfg.NewLogger())
		slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
}
