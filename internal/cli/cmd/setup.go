package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidsqueeze/internal/dirs"
	"vidsqueeze/internal/util/deps"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "setup",
		Short:         "Download a static ffmpeg build (Windows only)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ff, err := deps.FindFFmpeg(getPersistentString(cmd, "ffmpeg-path", "")); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "ffmpeg already available: %s\n", ff)
				return nil
			}

			toolsDir, err := dirs.ToolsDir()
			if err != nil {
				return &ExitError{Code: ExitMissingFFprobe, Err: err}
			}
			binDir, err := deps.FetchFFmpeg(cmd.Context(), toolsDir)
			if err != nil {
				return &ExitError{Code: ExitMissingFFprobe, Err: fmt.Errorf("setup: %w", err)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ffmpeg installed to %s\n", binDir)
			fmt.Fprintln(cmd.OutOrStdout(), "Add it to PATH or pass --ffmpeg-path / --ffprobe-path.")
			return nil
		},
	}
}
