package encoder

import (
	"context"
	"fmt"
	"strings"

	"vidsqueeze/internal/probe"
	"vidsqueeze/internal/progress"
	"vidsqueeze/internal/settings"
	"vidsqueeze/internal/util"
)

// Options configures an encode.
type Options struct {
	FFmpegPath       string
	Runner           util.CmdRunner
	PreserveMetadata bool
	Verbose          bool

	// JobID and Reporter enable progress events. Both optional; with a nil
	// Reporter the encode runs silently.
	JobID    string
	Reporter progress.Reporter
}

// maxStderrTail limits how much trailing ffmpeg output is attached to an
// encode error.
const maxStderrTail = 4096

// Encode runs ffmpeg to transcode inputPath into outputPath with the given
// settings. Frame-count progress from ffmpeg's stats lines is forwarded to
// opts.Reporter, monotonically and clamped to the probed total-frame
// estimate. On failure the returned error includes the tail of ffmpeg's
// stderr.
func Encode(ctx context.Context, inputPath, outputPath string, info probe.VideoInfo, cs settings.CompressionSettings, opts Options) error {
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	ffmpeg := opts.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	args := BuildArgs(inputPath, outputPath, cs, opts.PreserveMetadata)

	tracker := progress.NewFrameTracker(info.TotalFrames)
	spec := util.CmdSpec{
		Path:    ffmpeg,
		Args:    args,
		Verbose: opts.Verbose,
		StderrLine: func(line string) {
			frame, ok := ParseFrameLine(line)
			if !ok {
				return
			}
			if !tracker.Set(frame) {
				return
			}
			if opts.Reporter != nil {
				opts.Reporter.Update(progress.Update{
					JobID:   opts.JobID,
					Stage:   progress.StageEncoding,
					Percent: tracker.Percent(),
					Frame:   tracker.Current(),
					Total:   tracker.Total(),
				})
			}
		},
	}

	res, err := runner.Run(ctx, spec)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("encode canceled: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg failed (exit %d): %s", res.Code, stderrTail(res.Stderr))
	}

	tracker.Complete()
	if opts.Reporter != nil {
		opts.Reporter.Update(progress.Update{
			JobID:   opts.JobID,
			Stage:   progress.StageEncoding,
			Percent: tracker.Percent(),
			Frame:   tracker.Current(),
			Total:   tracker.Total(),
		})
	}
	return nil
}

// stderrTail returns the last chunk of captured stderr, trimmed for error
// messages.
func stderrTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxStderrTail {
		s = "..." + s[len(s)-maxStderrTail:]
	}
	if s == "" {
		return "no output"
	}
	return s
}
