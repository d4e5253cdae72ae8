package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vidsqueeze/internal/logging"
	"vidsqueeze/internal/model"
	"vidsqueeze/internal/pipeline"
	"vidsqueeze/internal/progress"
	"vidsqueeze/internal/settings"
	"vidsqueeze/internal/ui"
	"vidsqueeze/internal/util/deps"
	"vidsqueeze/internal/util/format"
)

// defaultInputDir is scanned when no files are given on the command line.
const defaultInputDir = "./videos"

type runMode struct {
	ForceTUI bool
	PlanOnly bool
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run [files...]",
		Short:         "Compress video files (default command)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PreRunE:       runPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, args, runMode{})
		},
	}
	bindRunFlags(cmd.Flags())
	return cmd
}

type ctxKey string

const runInputsKey ctxKey = "runInputs"

type runInputs struct {
	Files   []string
	Options model.CLIOptions
}

func runPreRun(cmd *cobra.Command, args []string) error {
	files, opts, err := assembleRunInputs(cmd, args)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	ctx := context.WithValue(cmd.Context(), runInputsKey, runInputs{
		Files:   files,
		Options: opts,
	})
	cmd.SetContext(ctx)
	return nil
}

func assembleRunInputs(cmd *cobra.Command, args []string) ([]string, model.CLIOptions, error) {
	// Persistent flags with precedence: flag > env/config > default
	outputDir := getPersistentString(cmd, "output-dir", "./compressed")
	quality := strings.ToLower(getPersistentString(cmd, "quality", "medium"))
	codec := strings.ToLower(getPersistentString(cmd, "codec", "libx264"))
	outFormat := strings.ToLower(strings.TrimPrefix(getPersistentString(cmd, "format", "mp4"), "."))
	verbose := getPersistentBool(cmd, "verbose", false)
	quiet := getPersistentBool(cmd, "quiet", false)
	ffmpegPath := getPersistentString(cmd, "ffmpeg-path", "")
	ffprobePath := getPersistentString(cmd, "ffprobe-path", "")

	// Run flags
	outputPath, _ := cmd.Flags().GetString("output")
	sizeStr, _ := cmd.Flags().GetString("size")
	ratio, _ := cmd.Flags().GetFloat64("ratio")
	batch, _ := cmd.Flags().GetBool("batch")
	noMetadata, _ := cmd.Flags().GetBool("no-metadata")
	noUI, _ := cmd.Flags().GetBool("no-ui")

	if verbose && quiet {
		return nil, model.CLIOptions{}, fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	if _, ok := settings.LookupQuality(quality); !ok {
		return nil, model.CLIOptions{}, fmt.Errorf("invalid --quality: %q (valid: %s)",
			quality, strings.Join(settings.Qualities(), "|"))
	}
	if _, ok := settings.LookupCodec(codec); !ok {
		return nil, model.CLIOptions{}, fmt.Errorf("invalid --codec: %q (valid: %s)",
			codec, strings.Join(settings.Codecs(), "|"))
	}

	var targetSizeMB float64
	if sizeStr != "" {
		mb, err := format.ParseSizeMB(sizeStr)
		if err != nil {
			return nil, model.CLIOptions{}, fmt.Errorf("invalid --size: %w", err)
		}
		targetSizeMB = mb
	}
	if ratio != 0 && (ratio < 0.1 || ratio > 1.0) {
		return nil, model.CLIOptions{}, fmt.Errorf("invalid --ratio: %v (valid range: 0.1-1.0)", ratio)
	}
	if targetSizeMB > 0 && ratio > 0 {
		return nil, model.CLIOptions{}, fmt.Errorf("--size and --ratio are mutually exclusive")
	}

	inputDir := ""
	files, err := expandInputs(args)
	if err != nil {
		return nil, model.CLIOptions{}, err
	}
	if len(args) == 0 {
		// Default mode: scan ./videos, write outputs next to the sources
		// unless the user picked an output directory.
		inputDir = defaultInputDir
		files, err = pipeline.FindVideos(inputDir)
		if err != nil {
			return nil, model.CLIOptions{}, fmt.Errorf("no input files given and the default directory cannot be scanned: %w", err)
		}
		if !cmd.Flags().Changed("output-dir") {
			outputDir = inputDir
		}
	}
	if len(files) == 0 {
		return nil, model.CLIOptions{}, fmt.Errorf("no input files found")
	}

	if outputPath != "" && (batch || len(files) > 1) {
		return nil, model.CLIOptions{}, fmt.Errorf("--output applies to a single input only; use --output-dir")
	}

	opts := model.CLIOptions{
		Inputs:           files,
		InputDir:         inputDir,
		OutputPath:       outputPath,
		OutputDir:        filepath.Clean(outputDir),
		Quality:          quality,
		Codec:            codec,
		TargetSizeMB:     targetSizeMB,
		Ratio:            ratio,
		OutputFormat:     outFormat,
		PreserveMetadata: !noMetadata,
		Batch:            batch || len(files) > 1,
		Verbose:          verbose,
		Quiet:            quiet,
		NoUI:             noUI,
		FFmpegPath:       ffmpegPath,
		FFprobePath:      ffprobePath,
	}
	return files, opts, nil
}

// expandInputs resolves glob patterns and drops duplicates and missing
// files, warning about the latter.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, serr := os.Stat(arg); serr != nil {
				fmt.Fprintf(os.Stderr, "warning: skipping %s: file not found\n", arg)
				continue
			}
			add(arg)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

func runExecute(cmd *cobra.Command, args []string, mode runMode) error {
	// Grab inputs from context; if not present (root directly called without PreRunE), assemble now.
	var in runInputs
	if v := cmd.Context().Value(runInputsKey); v != nil {
		in = v.(runInputs)
	} else {
		files, opts, err := assembleRunInputs(cmd, args)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		in = runInputs{Files: files, Options: opts}
	}

	logging.Setup(in.Options.Verbose, in.Options.Quiet)

	ffmpegPath, ferr := deps.FindFFmpeg(in.Options.FFmpegPath)
	if ferr != nil {
		return &ExitError{Code: ExitMissingFFmpeg, Err: ferr}
	}
	ffprobePath, perr := deps.FindFFprobe(in.Options.FFprobePath)
	if perr != nil {
		return &ExitError{Code: ExitMissingFFprobe, Err: perr}
	}
	in.Options.FFmpegPath = ffmpegPath
	in.Options.FFprobePath = ffprobePath
	log.Debug().Str("ffmpeg", ffmpegPath).Str("ffprobe", ffprobePath).Msg("resolved binaries")

	if mode.PlanOnly {
		return planExecute(cmd.Context(), in)
	}

	// TUI path (forced or auto if TTY and not disabled)
	useTUI := mode.ForceTUI || (!in.Options.NoUI && !in.Options.Quiet && isTerminal())
	if useTUI {
		batch, err := ui.Run(cmd.Context(), in.Files, in.Options)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		return summarize(batch)
	}

	svc := pipeline.NewService(
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithFFprobePath(ffprobePath),
		pipeline.WithCLIOptions(in.Options),
		pipeline.WithReporter(consoleReporter{}),
	)

	var batch model.BatchResult
	if in.Options.Batch {
		batch = svc.RunBatch(cmd.Context(), in.Files)
	} else {
		res, err := svc.RunJob(cmd.Context(), in.Files[0])
		res.Err = err
		batch.Add(res)
	}
	return summarize(batch)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// consoleReporter renders pipeline events in the plain (non-TUI) path.
// Frame-level updates are dropped; stage changes go to the debug log and
// final results to stdout.
type consoleReporter struct{}

func (consoleReporter) Update(u progress.Update) {
	if u.Message != "" && u.Stage != progress.StageCompleted {
		log.Debug().Str("stage", string(u.Stage)).Msg(u.Message)
	}
}

func (consoleReporter) Log(l progress.Log) {
	log.Debug().Msg(l.Line)
}

func (consoleReporter) Result(r progress.Result) {
	if r.Err != nil {
		log.Error().Err(r.Err).Str("input", r.InputPath).Msg("failed")
		return
	}
	fmt.Printf("Saved: %s (%s)\n", r.OutputPath, format.HumanizeBytes(r.Bytes))
}

// summarize prints the final per-run report and maps failures to exit 1.
func summarize(batch model.BatchResult) error {
	if batch.Total() > 1 {
		fmt.Printf("\nProcessed %d files: %d succeeded, %d failed\n",
			batch.Total(), len(batch.Succeeded), len(batch.Failed))
		for _, r := range batch.Succeeded {
			if r.OriginalBytes > 0 && r.CompressedBytes > 0 {
				fmt.Printf("  %s -> %s (%s, %.1f%% smaller)\n",
					filepath.Base(r.Input), filepath.Base(r.Output),
					format.HumanizeBytes(r.CompressedBytes),
					format.CompressionRatio(r.OriginalBytes, r.CompressedBytes))
			} else {
				fmt.Printf("  %s -> %s\n", filepath.Base(r.Input), filepath.Base(r.Output))
			}
		}
	}
	if len(batch.Failed) > 0 {
		fmt.Println("Failed files:")
		for _, r := range batch.Failed {
			fmt.Printf("  %s: %v\n", r.Input, r.Err)
		}
		return &ExitError{
			Code: ExitCLIError,
			Err:  fmt.Errorf("%d of %d files failed", len(batch.Failed), batch.Total()),
		}
	}
	return nil
}
