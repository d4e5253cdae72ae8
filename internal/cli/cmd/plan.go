package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidsqueeze/internal/encoder"
	"vidsqueeze/internal/pipeline"
	"vidsqueeze/internal/util/format"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan [files...]",
		Short:         "Show resolved settings and ffmpeg commands without encoding",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PreRunE:       runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, args, runMode{PlanOnly: true})
		},
	}
	// Reuse same flags; plan never encodes
	bindRunFlags(cmd.Flags())
	return cmd
}

func planExecute(ctx context.Context, in runInputs) error {
	svc := pipeline.NewService(
		pipeline.WithFFmpegPath(in.Options.FFmpegPath),
		pipeline.WithFFprobePath(in.Options.FFprobePath),
		pipeline.WithCLIOptions(in.Options),
	)

	failed := 0
	for _, f := range in.Files {
		pl, err := svc.Plan(ctx, f)
		if err != nil {
			fmt.Printf("%s: cannot plan: %v\n\n", f, err)
			failed++
			continue
		}
		printPlan(pl, in.Options.PreserveMetadata)
	}
	if failed > 0 {
		return &ExitError{
			Code: ExitCLIError,
			Err:  fmt.Errorf("%d of %d files could not be planned", failed, len(in.Files)),
		}
	}
	return nil
}

// printPlan outputs a dry-run plan of actions without executing them.
func printPlan(pl pipeline.Plan, preserveMetadata bool) {
	fmt.Printf("Plan: %s\n", pl.InputPath)
	fmt.Printf("- Output:      %s\n", pl.OutputPath)
	fmt.Printf("- Source:      %s, %s, %.1fs, %s\n",
		pl.Info.Resolution(), pl.Info.Codec, pl.Info.DurationSec,
		format.HumanizeBytes(pl.Info.SizeBytes))
	fmt.Printf("- Codec:       %s (%s)\n", pl.Settings.Codec, pl.Settings.CodecName)
	fmt.Printf("- Quality:     %s (speed %s)\n", pl.Settings.Quality, pl.Settings.Speed)
	if pl.Settings.BitrateMode {
		fmt.Printf("- Mode:        bitrate %s (%d bps)\n", pl.Settings.Bitrate, pl.Settings.BitrateBps)
	} else {
		fmt.Printf("- Mode:        CRF %d\n", pl.Settings.CRF)
	}
	args := encoder.BuildArgs(pl.InputPath, pl.OutputPath, pl.Settings, preserveMetadata)
	fmt.Printf("- Command:     %s %s\n\n", pl.FFmpegPath, strings.Join(args, " "))
}
