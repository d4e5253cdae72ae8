package media

import (
	"path/filepath"
	"sort"
	"strings"

	"vidsqueeze/internal/util"
)

// Supported input container extensions (lowercase, with leading dot).
var supportedExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
}

// IsSupported reports whether the file extension is a supported video container.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the supported extensions sorted for display.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for e := range supportedExtensions {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// OutputPath derives the destination path for a compressed file: the input
// basename plus suffix, placed in outputDir with the requested container
// extension. "clip.mov" with suffix "_compressed" and format "mp4" becomes
// "<outputDir>/clip_compressed.mp4".
func OutputPath(inputPath, outputDir, suffix, outputFormat string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := util.SanitizeFilename(stem + suffix)
	return filepath.Join(outputDir, name+"."+strings.TrimPrefix(outputFormat, "."))
}
