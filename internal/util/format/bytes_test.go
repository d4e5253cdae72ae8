package format

import "testing"

func TestHumanizeBytesBasic(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10.0 MB"},
		{int64(2.5 * 1024 * 1024 * 1024), "2.5 GB"},
	}
	for _, tt := range tests {
		if got := HumanizeBytes(tt.in); got != tt.want {
			t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompressionRatioBasic(t *testing.T) {
	tests := []struct {
		name       string
		original   int64
		compressed int64
		want       float64
	}{
		{name: "60 percent saved", original: 100, compressed: 40, want: 60},
		{name: "no savings", original: 100, compressed: 100, want: 0},
		{name: "grew", original: 100, compressed: 150, want: -50},
		{name: "zero original", original: 0, compressed: 50, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompressionRatio(tt.original, tt.compressed); got != tt.want {
				t.Errorf("CompressionRatio(%d, %d) = %v, want %v", tt.original, tt.compressed, got, tt.want)
			}
		})
	}
}
