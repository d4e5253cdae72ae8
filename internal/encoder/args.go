// Package encoder builds ffmpeg invocations and runs them while tracking
// frame progress.
package encoder

import (
	"strconv"

	"vidsqueeze/internal/settings"
)

// BuildArgs assembles the ffmpeg argument list for one encode. Argument
// order matters to ffmpeg: input first, then video codec options, then
// codec extras, then audio, then mapping, then the output path last.
func BuildArgs(inputPath, outputPath string, cs settings.CompressionSettings, preserveMetadata bool) []string {
	args := []string{
		"-i", inputPath,
		"-c:v", cs.Codec,
		"-preset", cs.Speed,
		"-y", // overwrite output without prompting
	}

	if cs.BitrateMode {
		args = append(args, "-b:v", cs.Bitrate, "-maxrate", cs.Bitrate)
	} else {
		args = append(args, "-crf", strconv.Itoa(cs.CRF))
	}

	if c, ok := settings.LookupCodec(cs.Codec); ok {
		args = append(args, c.ExtraArgs...)
	}

	args = append(args, "-c:a", "aac", "-b:a", "128k")

	if preserveMetadata {
		args = append(args, "-map_metadata", "0")
	}

	return append(args, outputPath)
}
