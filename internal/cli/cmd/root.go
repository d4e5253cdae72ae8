package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vidsqueeze/internal/config"
)

const (
	ExitOK             = 0
	ExitCLIError       = 1
	ExitMissingFFmpeg  = 2
	ExitMissingFFprobe = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vidsqueeze [files...]",
		Short:         "Squeeze videos down to size with ffmpeg",
		Long:          "Vidsqueeze compresses video files with ffmpeg using quality presets, a target output size, or a compression ratio. Give it files or glob patterns (or nothing, to scan ./videos) and it probes, encodes, and reports a batch summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to running the pipeline when no subcommand is specified.
			return runExecute(cmd, args, runMode{})
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("output-dir", "d", "./compressed", "Output directory for compressed files")
	root.PersistentFlags().StringP("quality", "q", "medium", "Quality preset: ultra, high, medium, low")
	root.PersistentFlags().StringP("codec", "c", "libx264", "Video codec: libx264, libx265")
	root.PersistentFlags().StringP("format", "f", "mp4", "Output container format")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")
	root.PersistentFlags().Bool("quiet", false, "Suppress everything below errors")
	root.PersistentFlags().String("ffmpeg-path", "", "Path to the ffmpeg binary")
	root.PersistentFlags().String("ffprobe-path", "", "Path to the ffprobe binary")

	// Also bind run-specific flags on root, so `vidsqueeze <files>` works.
	bindRunFlags(root.Flags())

	_ = config.Init(root)

	// Subcommands
	root.AddCommand(newRunCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newPresetsCmd())
	root.AddCommand(newSetupCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindRunFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", "Output file path (single input only)")
	fs.StringP("size", "s", "", "Target output size, e.g. 50MB, 1GB, 500KB")
	fs.Float64P("ratio", "r", 0, "Compression ratio of the original bitrate (0.1-1.0)")
	fs.Bool("batch", false, "Treat inputs as a batch even for a single file")
	fs.Bool("no-metadata", false, "Do not copy source metadata into the output")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// Helpers. Persistent flags are merged into Flags() during execution, so
// these work from the root command and subcommands alike.
func getPersistentString(cmd *cobra.Command, name, def string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil || v == "" {
		return def
	}
	return v
}

func getPersistentBool(cmd *cobra.Command, name string, def bool) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return def
	}
	return v
}
