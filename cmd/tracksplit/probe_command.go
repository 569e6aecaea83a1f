package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracksplit/internal/asset"
	"tracksplit/internal/marker"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect an audio file's stream properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			src, err := asset.Load(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, src)
			}

			rows := [][]string{
				{"Path", src.Path},
				{"Duration", marker.FormatTimestamp(src.DurationSeconds)},
				{"Codec", src.Codec},
				{"Sample rate", fmt.Sprintf("%d Hz", src.SampleRate)},
				{"Channels", fmt.Sprintf("%d", src.Channels)},
				{"Size", fmt.Sprintf("%d bytes", src.SizeBytes)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Property", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit probe details as JSON")

	return cmd
}
