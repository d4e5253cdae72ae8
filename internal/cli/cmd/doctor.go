package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidsqueeze/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (ffmpeg, ffprobe)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ff, ferr := deps.FindFFmpeg(getPersistentString(cmd, "ffmpeg-path", ""))
			if ferr != nil {
				return &ExitError{Code: ExitMissingFFmpeg, Err: ferr}
			}
			fp, perr := deps.FindFFprobe(getPersistentString(cmd, "ffprobe-path", ""))
			if perr != nil {
				return &ExitError{Code: ExitMissingFFprobe, Err: perr}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg:  %s\n", ff)
			fmt.Fprintf(cmd.OutOrStdout(), "FFprobe: %s\n", fp)
			return nil
		},
	}
}
