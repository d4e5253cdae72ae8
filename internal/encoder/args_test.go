package encoder

import (
	"reflect"
	"testing"

	"vidsqueeze/internal/settings"
)

func TestBuildArgs_CRFMode(t *testing.T) {
	cs := settings.CompressionSettings{
		Codec: "libx264",
		Speed: "medium",
		CRF:   23,
	}

	got := BuildArgs("/in/clip.mp4", "/out/clip_compressed.mp4", cs, true)
	want := []string{
		"-i", "/in/clip.mp4",
		"-c:v", "libx264",
		"-preset", "medium",
		"-y",
		"-crf", "23",
		"-movflags", "+faststart",
		"-c:a", "aac",
		"-b:a", "128k",
		"-map_metadata", "0",
		"/out/clip_compressed.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() =\n  %v\nwant\n  %v", got, want)
	}
}

func TestBuildArgs_BitrateMode(t *testing.T) {
	cs := settings.CompressionSettings{
		Codec:       "libx265",
		Speed:       "medium",
		BitrateMode: true,
		BitrateBps:  754974,
		Bitrate:     "754k",
	}

	got := BuildArgs("/in/clip.mkv", "/out/clip_compressed.mp4", cs, false)
	want := []string{
		"-i", "/in/clip.mkv",
		"-c:v", "libx265",
		"-preset", "medium",
		"-y",
		"-b:v", "754k",
		"-maxrate", "754k",
		"-x265-params", "log-level=error",
		"-c:a", "aac",
		"-b:a", "128k",
		"/out/clip_compressed.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() =\n  %v\nwant\n  %v", got, want)
	}
}

func TestBuildArgs_NoMetadataFlagWhenDisabled(t *testing.T) {
	cs := settings.CompressionSettings{Codec: "libx264", Speed: "fast", CRF: 28}
	got := BuildArgs("in.mp4", "out.mp4", cs, false)
	for _, a := range got {
		if a == "-map_metadata" {
			t.Error("args contain -map_metadata, want omitted")
		}
	}
}
