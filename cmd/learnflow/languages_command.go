package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/learn-flow/internal/transcript"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages <url>",
		Short: "List the transcript languages a video offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := transcript.ExtractVideoID(args[0])
			if err != nil {
				return fmt.Errorf("invalid YouTube URL or video ID: %w", err)
			}

			langs, err := ctx.transcripts.List(cmd.Context(), videoID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(langs))
			for _, l := range langs {
				rows = append(rows, []string{l.Code, l.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Language"}, rows))
			return nil
		},
	}
}
