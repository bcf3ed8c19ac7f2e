package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site once into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(appConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.generator.Build(ctx)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Site built",
			"build_id", result.BuildID,
			"records", result.Records,
			"pages", result.Pages,
			"static", result.Static,
			"problems", len(result.Problems),
			"duration", result.Duration,
			"output", appConfig.OutputDir,
		)
		return nil
	},
}
