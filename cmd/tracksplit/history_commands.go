package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tracksplit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past split runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.RunID),
					run.Album,
					fmt.Sprintf("%d", run.TrackCount),
					fmt.Sprintf("%d/%d/%d", run.ExportedCount, run.DegradedCount, run.FailedCount),
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					resultWord(run.Success),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Album", "Tracks", "Ok/Deg/Fail", "When", "Result"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 lists all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit runs as JSON")

	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its per-track outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			run, tracks, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, struct {
					Run    history.Run     `json:"run"`
					Tracks []history.Track `json:"tracks"`
				}{run, tracks})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run: %s\n", run.RunID)
			fmt.Fprintf(out, "Source: %s\n", run.SourcePath)
			fmt.Fprintf(out, "Album: %s\n", run.Album)
			fmt.Fprintf(out, "Result: %s (%d exported, %d degraded, %d failed) in %s\n",
				resultWord(run.Success), run.ExportedCount, run.DegradedCount, run.FailedCount,
				run.Elapsed.Round(100*time.Millisecond))

			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				detail := track.OutputPath
				if track.Status != "success" && track.ErrorKind != "" {
					detail = track.ErrorKind
					if track.ErrorMessage != "" {
						detail += ": " + track.ErrorMessage
					}
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", track.Index),
					track.Title,
					track.Status,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "Status", "Output / Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run as JSON")

	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d runs\n", deleted)
			return nil
		},
	}
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

func resultWord(success bool) string {
	if success {
		return "ok"
	}
	return "failed"
}
