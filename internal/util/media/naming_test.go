package media

import (
	"path/filepath"
	"testing"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "mp4", path: "video.mp4", want: true},
		{name: "uppercase extension", path: "VIDEO.MP4", want: true},
		{name: "mkv with dirs", path: "/data/in/video.mkv", want: true},
		{name: "mov", path: "clip.mov", want: true},
		{name: "avi", path: "clip.avi", want: true},
		{name: "wmv", path: "clip.wmv", want: true},
		{name: "flv", path: "clip.flv", want: true},
		{name: "webm", path: "clip.webm", want: true},
		{name: "m4v", path: "clip.m4v", want: true},
		{name: "text file", path: "notes.txt", want: false},
		{name: "no extension", path: "video", want: false},
		{name: "audio file", path: "track.mp3", want: false},
		{name: "transport stream", path: "cap.ts", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupported(tt.path); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		outDir string
		suffix string
		format string
		want   string
	}{
		{
			name:   "basic",
			input:  "/in/video.mov",
			outDir: "/out",
			suffix: "_compressed",
			format: "mp4",
			want:   filepath.Join("/out", "video_compressed.mp4"),
		},
		{
			name:   "format with leading dot",
			input:  "clip.avi",
			outDir: "out",
			suffix: "_compressed",
			format: ".mp4",
			want:   filepath.Join("out", "clip_compressed.mp4"),
		},
		{
			name:   "unsafe characters sanitized",
			input:  "/in/my:video?.mkv",
			outDir: "/out",
			suffix: "_compressed",
			format: "mp4",
			want:   filepath.Join("/out", "my_video_compressed.mp4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.input, tt.outDir, tt.suffix, tt.format); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
