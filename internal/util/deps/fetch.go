package deps

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Static Windows build published by gyan.dev; other platforms are expected
// to install ffmpeg via their package manager.
const windowsBuildURL = "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.zip"

// FetchFFmpeg downloads and unpacks a static ffmpeg build into destDir and
// returns the resulting bin directory. Only supported on Windows.
func FetchFFmpeg(ctx context.Context, destDir string) (string, error) {
	if runtime.GOOS != "windows" {
		return "", fmt.Errorf("automatic ffmpeg download is only supported on Windows; install ffmpeg with your package manager")
	}
	if binDir := findBinDir(destDir); binDir != "" {
		return binDir, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	zipPath := filepath.Join(destDir, "ffmpeg.zip")
	if err := download(ctx, windowsBuildURL, zipPath); err != nil {
		return "", fmt.Errorf("download ffmpeg: %w", err)
	}
	defer os.Remove(zipPath)

	if err := unzip(zipPath, destDir); err != nil {
		return "", fmt.Errorf("extract ffmpeg: %w", err)
	}

	binDir := findBinDir(destDir)
	if binDir == "" {
		return "", fmt.Errorf("ffmpeg binary not found after extraction under %s", destDir)
	}
	return binDir, nil
}

func download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

func unzip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, rc)
	return err
}

// findBinDir locates a bin/ directory containing ffmpeg.exe under root,
// as laid out by the release-essentials archive.
func findBinDir(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		bin := filepath.Join(root, e.Name(), "bin")
		if _, err := os.Stat(filepath.Join(bin, "ffmpeg.exe")); err == nil {
			return bin
		}
	}
	return ""
}
