package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean name untouched", in: "holiday_clip", want: "holiday_clip"},
		{name: "forbidden characters", in: `a<b>c:d"e/f\g|h?i*j`, want: "a_b_c_d_e_f_g_h_i_j"},
		{name: "collapses underscores", in: "a//b", want: "a_b"},
		{name: "trims edges", in: "_.name._", want: "name"},
		{name: "only forbidden", in: "???", want: "unnamed"},
		{name: "empty", in: "", want: "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "a", "b", "c")
	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	fi, err := os.Stat(target)
	if err != nil || !fi.IsDir() {
		t.Fatalf("EnsureDir() did not create directory: %v", err)
	}
	// Idempotent
	if err := EnsureDir(target); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
	if err := EnsureDir(""); err == nil {
		t.Error("EnsureDir(\"\") expected error")
	}
}

func TestRemoveIfExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "partial.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("RemoveIfExists() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists after RemoveIfExists")
	}
	// Missing file is not an error
	if err := RemoveIfExists(path); err != nil {
		t.Errorf("RemoveIfExists() on missing file error = %v", err)
	}
}
