package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tracksplit/internal/staging"
)

func newStagingCommand(ctx *commandContext) *cobra.Command {
	stagingCmd := &cobra.Command{
		Use:   "staging",
		Short: "Manage fetched source files awaiting a split",
	}

	stagingCmd.AddCommand(newStagingListCommand(ctx))
	stagingCmd.AddCommand(newStagingCleanCommand(ctx))

	return stagingCmd
}

func newStagingListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staged files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			files, err := staging.ListFiles(cfg.Paths.StagingDir)
			if err != nil {
				return fmt.Errorf("list staging directory: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "Staging directory is empty")
				return nil
			}

			rows := make([][]string, 0, len(files))
			for _, file := range files {
				rows = append(rows, []string{
					file.Name,
					fmt.Sprintf("%.1f MiB", float64(file.Size)/(1024*1024)),
					file.ModTime.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Size", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newStagingCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove staged files older than a cutoff and orphaned partials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			result := staging.CleanStale(cfg.Paths.StagingDir, olderThan, logger)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d files\n", len(result.Removed))
			for _, cleanupErr := range result.Errors {
				fmt.Fprintf(out, "failed: %s: %v\n", cleanupErr.Path, cleanupErr.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d files could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Remove files not modified within this duration")

	return cmd
}
