package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tracksplit/internal/marker"
)

func newMarkersCommand(ctx *commandContext) *cobra.Command {
	var durationFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "markers <file>",
		Short: "Parse a tracklist file and preview the resulting markers",
		Long: `Markers parses a tracklist ("-" reads stdin) and prints the markers a
split run would use. With --duration the markers are also validated the way
a split run validates them before touching any file.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readMarkersInput(args[0])
			if err != nil {
				return err
			}

			markers := marker.ParseTracklist(text)
			if jsonOutput {
				return writeJSON(cmd, markers)
			}

			out := cmd.OutOrStdout()
			if len(markers) == 0 {
				fmt.Fprintln(out, "No markers recognized")
				return nil
			}

			rows := make([][]string, 0, len(markers))
			for i, m := range markers {
				end := ""
				if m.HasEnd() {
					end = marker.FormatTimestamp(m.End)
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					marker.FormatTimestamp(m.Start),
					end,
					m.Title,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Title"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))

			if strings.TrimSpace(durationFlag) != "" {
				duration, err := parseDurationValue(durationFlag)
				if err != nil {
					return err
				}
				if _, err := marker.Validate(markers, duration); err != nil {
					return fmt.Errorf("markers invalid for duration %s: %w", marker.FormatTimestamp(duration), err)
				}
				fmt.Fprintf(out, "Markers valid for duration %s\n", marker.FormatTimestamp(duration))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&durationFlag, "duration", "", "Validate against a source duration (hh:mm:ss, mm:ss, or seconds)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit parsed markers as JSON")

	return cmd
}

func parseDurationValue(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, ":") {
		return marker.ParseTimestamp(value)
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", value, err)
	}
	return seconds, nil
}
