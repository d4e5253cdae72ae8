// Package probe extracts media metadata by running ffprobe against input files.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"vidsqueeze/internal/util"
)

const defaultFPS = 25.0

// VideoInfo is the parsed metadata for a single input file. It is produced
// once per file and never mutated afterwards.
type VideoInfo struct {
	Path        string
	DurationSec float64 // seconds
	BitRate     int64   // bits/sec, container-level
	SizeBytes   int64
	Width       int
	Height      int
	Codec       string  // e.g. "h264"
	FPS         float64 // parsed from r_frame_rate, 25 when unknown
	FormatName  string  // container format, e.g. "mov,mp4,m4a,3gp,3g2,mj2"
	TotalFrames int     // duration * fps, for progress estimation
}

// Options configure a probe call.
type Options struct {
	FFprobePath string
	Runner      util.CmdRunner
	Verbose     bool
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// metadata for its first video stream.
func Probe(ctx context.Context, path string, opts Options) (VideoInfo, error) {
	if opts.FFprobePath == "" {
		return VideoInfo{}, fmt.Errorf("ffprobe path is required")
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	fi, err := os.Stat(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("file not found: %s", path)
	}

	res, err := runner.Run(ctx, util.CmdSpec{
		Path: opts.FFprobePath,
		Args: []string{
			"-v", "quiet",
			"-print_format", "json",
			"-show_format", "-show_streams",
			path,
		},
		Verbose:       opts.Verbose,
		CaptureStdout: true,
	})
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	info, err := ParseJSON(res.Stdout)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	info.Path = path
	info.SizeBytes = fi.Size()
	return info, nil
}

// ParseJSON converts raw ffprobe JSON output into a VideoInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (VideoInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return VideoInfo{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var vs *ffprobeStream
	for i := range raw.Streams {
		if raw.Streams[i].CodecType == "video" {
			vs = &raw.Streams[i]
			break
		}
	}
	if vs == nil {
		return VideoInfo{}, fmt.Errorf("no video stream found")
	}

	duration := parseFloat(raw.Format.Duration)
	if duration <= 0 {
		return VideoInfo{}, fmt.Errorf("missing or invalid duration")
	}
	bitrate := parseInt64(raw.Format.BitRate)
	if bitrate <= 0 {
		return VideoInfo{}, fmt.Errorf("missing or invalid bit_rate")
	}

	fps := ParseFrameRate(vs.RFrameRate)
	return VideoInfo{
		DurationSec: duration,
		BitRate:     bitrate,
		SizeBytes:   parseInt64(raw.Format.Size),
		Width:       vs.Width,
		Height:      vs.Height,
		Codec:       vs.CodecName,
		FPS:         fps,
		FormatName:  raw.Format.FormatName,
		TotalFrames: int(duration * fps),
	}, nil
}

// ParseFrameRate parses ffprobe's fraction-style frame rate ("30000/1001").
// Malformed input or a zero denominator falls back to 25 fps.
func ParseFrameRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultFPS
	}
	num, den, found := strings.Cut(s, "/")
	if !found {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			return f
		}
		return defaultFPS
	}
	n, errN := strconv.ParseFloat(num, 64)
	d, errD := strconv.ParseFloat(den, 64)
	if errN != nil || errD != nil || d == 0 || n <= 0 {
		return defaultFPS
	}
	return n / d
}

// Resolution returns "WxH" for display, or "unknown".
func (v VideoInfo) Resolution() string {
	if v.Width <= 0 || v.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
