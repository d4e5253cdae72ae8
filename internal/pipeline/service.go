// Package pipeline provides planning and orchestration for the vidsqueeze workflow.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vidsqueeze/internal/encoder"
	"vidsqueeze/internal/model"
	"vidsqueeze/internal/probe"
	"vidsqueeze/internal/progress"
	"vidsqueeze/internal/settings"
	"vidsqueeze/internal/util"
	"vidsqueeze/internal/util/format"
	"vidsqueeze/internal/util/media"
)

// CompressedSuffix is appended to derived output basenames and used to skip
// already-compressed files when scanning input directories.
const CompressedSuffix = "_compressed"

// Service orchestrates the probe → plan → encode workflow.
type Service struct {
	ffmpegPath  string
	ffprobePath string
	opts        model.CLIOptions
	runner      util.CmdRunner
	reporter    progress.Reporter
	jobID       string
}

// Option configures a Service.
type Option func(*Service)

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Service) {
		s.ffmpegPath = p
	}
}

// WithFFprobePath sets the ffprobe binary path.
func WithFFprobePath(p string) Option {
	return func(s *Service) {
		s.ffprobePath = p
	}
}

// WithCLIOptions sets the CLI options used for planning and execution.
func WithCLIOptions(o model.CLIOptions) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithReporter attaches a progress reporter (used by TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithJobID sets the job ID associated with reporter events.
func WithJobID(id string) Option {
	return func(s *Service) {
		s.jobID = id
	}
}

// NewService constructs a new Service with the provided options.
// It applies sensible defaults for missing components.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	return s
}

// Plan contains the computed plan for one input file (for dry-run/introspection).
type Plan struct {
	InputPath  string
	OutputPath string
	Settings   settings.CompressionSettings
	Info       probe.VideoInfo

	FFmpegPath  string
	FFprobePath string
}

// RunJob executes the full pipeline for a single input file.
// It never prints; when a Reporter is present, it emits progress and exactly
// one final Result per call.
func (s *Service) RunJob(ctx context.Context, inputPath string) (model.FileResult, error) {
	res, err := s.runJob(ctx, inputPath)
	if err != nil {
		s.emitError(inputPath, err)
		return res, err
	}
	s.emitSaved(res)
	return res, nil
}

func (s *Service) runJob(ctx context.Context, inputPath string) (model.FileResult, error) {
	res := model.FileResult{Input: inputPath}

	if !media.IsSupported(inputPath) {
		return res, fmt.Errorf("unsupported format %q", filepath.Ext(inputPath))
	}
	if s.ffmpegPath == "" {
		return res, fmt.Errorf("ffmpeg path is required")
	}

	pl, err := s.Plan(ctx, inputPath)
	if err != nil {
		return res, err
	}
	res.Output = pl.OutputPath
	res.OriginalBytes = pl.Info.SizeBytes

	if err := util.EnsureDir(filepath.Dir(pl.OutputPath)); err != nil {
		return res, fmt.Errorf("create output directory: %w", err)
	}

	s.emitStage(progress.StageEncoding, fmt.Sprintf("Encoding %s", filepath.Base(inputPath)))
	err = encoder.Encode(ctx, inputPath, pl.OutputPath, pl.Info, pl.Settings, encoder.Options{
		FFmpegPath:       s.ffmpegPath,
		Runner:           s.runner,
		PreserveMetadata: s.opts.PreserveMetadata,
		Verbose:          s.opts.Verbose,
		JobID:            s.jobID,
		Reporter:         s.reporter,
	})
	if err != nil {
		// Do not leave a truncated output behind after an encoder failure.
		// On interrupt the partial file is kept as-is.
		if ctx.Err() == nil {
			_ = util.RemoveIfExists(pl.OutputPath)
		}
		return res, fmt.Errorf("encode: %w", err)
	}

	if fi, serr := os.Stat(pl.OutputPath); serr == nil {
		res.CompressedBytes = fi.Size()
	}
	return res, nil
}

// Plan probes the input and resolves encoder settings and the output path
// without running ffmpeg.
func (s *Service) Plan(ctx context.Context, inputPath string) (Plan, error) {
	s.emitStage(progress.StageProbing, fmt.Sprintf("Probing %s", filepath.Base(inputPath)))

	info, err := probe.Probe(ctx, inputPath, probe.Options{
		FFprobePath: s.ffprobePath,
		Runner:      s.runner,
		Verbose:     s.opts.Verbose,
	})
	if err != nil {
		return Plan{}, fmt.Errorf("probe: %w", err)
	}

	cs, err := settings.Resolve(s.opts.Quality, s.opts.Codec, info, s.opts.TargetSizeMB, s.opts.Ratio)
	if err != nil {
		return Plan{}, err
	}

	outPath := s.opts.OutputPath
	if outPath == "" {
		outPath = media.OutputPath(inputPath, s.opts.OutputDir, CompressedSuffix, s.opts.OutputFormat)
	}

	return Plan{
		InputPath:   inputPath,
		OutputPath:  outPath,
		Settings:    cs,
		Info:        info,
		FFmpegPath:  s.ffmpegPath,
		FFprobePath: s.ffprobePath,
	}, nil
}

func (s *Service) emitStage(stage progress.Stage, msg string) {
	if s.reporter == nil {
		return
	}
	s.reporter.Update(progress.Update{
		JobID:   s.jobID,
		Stage:   stage,
		Percent: -1,
		Message: msg,
	})
}

// emitSaved sends a final "saved" update and reporter result for TUI.
func (s *Service) emitSaved(r model.FileResult) {
	if s.reporter == nil {
		return
	}
	name := filepath.Base(r.Output)
	size := format.HumanizeBytes(r.CompressedBytes)
	s.reporter.Update(progress.Update{
		JobID:   s.jobID,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: fmt.Sprintf("Saved: %s (%s)", name, size),
	})
	s.reporter.Result(progress.Result{
		JobID:      s.jobID,
		InputPath:  r.Input,
		OutputPath: r.Output,
		Bytes:      r.CompressedBytes,
	})
}

func (s *Service) emitError(inputPath string, err error) {
	if s.reporter == nil {
		return
	}
	s.reporter.Update(progress.Update{
		JobID:   s.jobID,
		Stage:   progress.StageError,
		Percent: -1,
		Message: err.Error(),
	})
	s.reporter.Result(progress.Result{
		JobID:     s.jobID,
		InputPath: inputPath,
		Err:       err,
	})
}
