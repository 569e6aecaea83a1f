package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracksplit/internal/fetch"
	"tracksplit/internal/marker"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var destDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a remote audio source without splitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dir := destDir
			if dir == "" {
				dir = cfg.Paths.StagingDir
			}
			fetcher, err := fetch.New(fetch.Config{
				OutputDir:         dir,
				Retries:           cfg.Fetch.Retries,
				RestrictFilenames: cfg.Fetch.RestrictFilenames,
			}, logger)
			if err != nil {
				return err
			}

			result, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Downloaded: %s\n", result.Path)
			if result.Title != "" {
				fmt.Fprintf(out, "Title: %s\n", result.Title)
			}
			if markers := marker.ParseTracklist(result.Description); len(markers) > 0 {
				fmt.Fprintf(out, "Tracklist: %d markers found in the description\n", len(markers))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dir", "d", "", "Destination directory (default: staging directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the fetch result as JSON")

	return cmd
}
