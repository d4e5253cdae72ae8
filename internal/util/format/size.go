package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSizeMB parses a human-readable size string like "50MB", "1.5GB" or
// "500KB" into megabytes. A bare number ("50") is treated as megabytes.
func ParseSizeMB(s string) (float64, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if cleaned == "" {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	var numStr string
	var factor float64
	switch {
	case strings.HasSuffix(cleaned, "GB"):
		numStr, factor = cleaned[:len(cleaned)-2], 1024
	case strings.HasSuffix(cleaned, "MB"):
		numStr, factor = cleaned[:len(cleaned)-2], 1
	case strings.HasSuffix(cleaned, "KB"):
		numStr, factor = cleaned[:len(cleaned)-2], 1.0/1024
	case strings.HasSuffix(cleaned, "B"):
		numStr, factor = cleaned[:len(cleaned)-1], 1.0/(1024*1024)
	default:
		// No unit: assume megabytes.
		numStr, factor = cleaned, 1
	}

	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid size format: %q (negative)", s)
	}
	return v * factor, nil
}
