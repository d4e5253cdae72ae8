// Package settings maps quality presets, codecs, and size/ratio targets to
// concrete ffmpeg encoder parameters.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"vidsqueeze/internal/probe"
)

// ErrInvalidParameter marks configuration errors (unknown quality or codec).
// These are rejected before any subprocess is spawned.
var ErrInvalidParameter = errors.New("invalid parameter")

// MinBitrateKbps is the floor applied to computed bitrates to avoid
// degenerate encodes.
const MinBitrateKbps = 100

// QualityPreset is a named quality configuration. The table is fixed at
// startup and never mutated.
type QualityPreset struct {
	Name          string
	CRF           int
	Speed         string  // ffmpeg -preset value
	BitrateFactor float64 // default ratio when encoding by ratio without an explicit one
	Description   string
}

// Codec describes a supported video encoder.
type Codec struct {
	ID          string // ffmpeg -c:v value
	Name        string
	Description string
	Extension   string   // default output container extension
	ExtraArgs   []string // codec-specific ffmpeg flags
}

var qualityPresets = map[string]QualityPreset{
	"ultra": {
		Name:          "ultra",
		CRF:           15,
		Speed:         "slow",
		BitrateFactor: 0.9,
		Description:   "Highest quality, largest file size",
	},
	"high": {
		Name:          "high",
		CRF:           18,
		Speed:         "medium",
		BitrateFactor: 0.8,
		Description:   "High quality, good for archival",
	},
	"medium": {
		Name:          "medium",
		CRF:           23,
		Speed:         "medium",
		BitrateFactor: 0.6,
		Description:   "Balanced quality and size",
	},
	"low": {
		Name:          "low",
		CRF:           28,
		Speed:         "fast",
		BitrateFactor: 0.4,
		Description:   "Lower quality, smaller file size",
	},
}

var codecs = map[string]Codec{
	"libx264": {
		ID:          "libx264",
		Name:        "H.264/AVC",
		Description: "Widely compatible, good quality",
		Extension:   "mp4",
		ExtraArgs:   []string{"-movflags", "+faststart"},
	},
	"libx265": {
		ID:          "libx265",
		Name:        "H.265/HEVC",
		Description: "Better compression, newer standard",
		Extension:   "mp4",
		ExtraArgs:   []string{"-x265-params", "log-level=error"},
	},
}

// CompressionSettings is the resolved encoder configuration for one file.
// Exactly one of CRF mode or bitrate mode is active.
type CompressionSettings struct {
	Codec     string // ffmpeg -c:v value
	CodecName string // display name
	Quality   string // preset name
	Speed     string // ffmpeg -preset value

	BitrateMode bool
	CRF         int    // valid when !BitrateMode
	BitrateBps  int64  // valid when BitrateMode
	Bitrate     string // "754k", truncated to whole kilobits; valid when BitrateMode
}

// Qualities returns the preset names sorted for display.
func Qualities() []string {
	return sortedKeys(qualityPresets)
}

// Codecs returns the codec ids sorted for display.
func Codecs() []string {
	return sortedKeys(codecs)
}

// LookupQuality returns the preset for a quality name.
func LookupQuality(name string) (QualityPreset, bool) {
	p, ok := qualityPresets[name]
	return p, ok
}

// LookupCodec returns the codec record for an encoder id.
func LookupCodec(id string) (Codec, bool) {
	c, ok := codecs[id]
	return c, ok
}

// Resolve produces encoder settings for one file. targetSizeMB and ratio
// are optional (<= 0 means unset); when neither is set the encode runs in
// constant-quality (CRF) mode. When encoding by ratio without an explicit
// value, the preset's bitrate factor is used; an explicit target size
// takes precedence over any ratio.
func Resolve(quality, codec string, info probe.VideoInfo, targetSizeMB, ratio float64) (CompressionSettings, error) {
	preset, ok := qualityPresets[quality]
	if !ok {
		return CompressionSettings{}, fmt.Errorf("%w: quality %q (valid: %s)",
			ErrInvalidParameter, quality, strings.Join(Qualities(), "|"))
	}
	c, ok := codecs[codec]
	if !ok {
		return CompressionSettings{}, fmt.Errorf("%w: codec %q (valid: %s)",
			ErrInvalidParameter, codec, strings.Join(Codecs(), "|"))
	}

	cs := CompressionSettings{
		Codec:     c.ID,
		CodecName: c.Name,
		Quality:   preset.Name,
		Speed:     preset.Speed,
	}

	if targetSizeMB <= 0 && ratio <= 0 {
		cs.CRF = preset.CRF
		return cs, nil
	}

	if ratio <= 0 {
		ratio = preset.BitrateFactor
	}
	bps := TargetBitrate(info, targetSizeMB, ratio)
	cs.BitrateMode = true
	cs.BitrateBps = bps
	cs.Bitrate = fmt.Sprintf("%dk", bps/1000)
	return cs, nil
}

// TargetBitrate computes the video bitrate in bits/sec for a target size in
// MB (takes precedence) or a compression ratio against the original
// bitrate. The result never falls below MinBitrateKbps.
func TargetBitrate(info probe.VideoInfo, targetSizeMB, ratio float64) int64 {
	var bps int64
	if targetSizeMB > 0 {
		targetBits := targetSizeMB * 8 * 1024 * 1024
		// Reserve 10% for audio and container overhead
		bps = int64(targetBits * 0.9 / info.DurationSec)
	} else {
		bps = int64(float64(info.BitRate) * ratio)
	}

	if min := int64(MinBitrateKbps * 1000); bps < min {
		return min
	}
	return bps
}

func sortedKeys[M map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
