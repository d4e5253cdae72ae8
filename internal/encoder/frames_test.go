package encoder

import "testing"

func TestParseFrameLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
		ok   bool
	}{
		{
			name: "typical stats line",
			line: "frame=  123 fps= 45 q=28.0 size=    2048kB time=00:00:04.10 bitrate=4092.3kbits/s",
			want: 123,
			ok:   true,
		},
		{
			name: "no space after equals",
			line: "frame=7 fps=0.0 q=0.0 size= 0kB",
			want: 7,
			ok:   true,
		},
		{
			name: "wide padding",
			line: "frame=   98765 fps=240 q=23.0",
			want: 98765,
			ok:   true,
		},
		{name: "banner line", line: "ffmpeg version 6.1 Copyright (c) 2000-2023", ok: false},
		{name: "stream mapping", line: "Stream #0:0 -> #0:0 (h264 (native) -> h264 (libx264))", ok: false},
		{name: "empty", line: "", ok: false},
		{name: "frame without number", line: "frame= fps=30", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFrameLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseFrameLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseFrameLine(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}
