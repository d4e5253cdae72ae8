// Package model holds option and result types shared between the CLI,
// the pipeline, and the UI.
package model

// CLIOptions carries the resolved command-line options for a run.
type CLIOptions struct {
	// Inputs is the list of video files to process. Empty means scan the
	// default input directory.
	Inputs []string

	// InputDir is scanned for supported videos when Inputs is empty.
	InputDir string

	// OutputPath forces the destination for a single-file run. Ignored in
	// batch mode.
	OutputPath string

	// OutputDir receives derived outputs when OutputPath is unset.
	OutputDir string

	Quality      string  // preset name: ultra|high|medium|low
	Codec        string  // encoder id: libx264|libx265
	TargetSizeMB float64 // target output size in MB; <= 0 means unset
	Ratio        float64 // compression ratio 0.1..1.0; <= 0 means unset
	OutputFormat string  // output container extension without dot

	PreserveMetadata bool
	Batch            bool

	Verbose bool
	Quiet   bool
	NoUI    bool

	FFmpegPath  string // explicit binary path; empty = search PATH
	FFprobePath string
}

// FileResult records the outcome for one input file.
type FileResult struct {
	Input  string
	Output string

	OriginalBytes   int64
	CompressedBytes int64

	Err error // nil on success
}

// BatchResult aggregates per-file outcomes for a run.
type BatchResult struct {
	Succeeded []FileResult
	Failed    []FileResult
}

// Add files a result into the succeeded or failed bucket.
func (b *BatchResult) Add(r FileResult) {
	if r.Err != nil {
		b.Failed = append(b.Failed, r)
		return
	}
	b.Succeeded = append(b.Succeeded, r)
}

// Total returns the number of files processed.
func (b *BatchResult) Total() int {
	return len(b.Succeeded) + len(b.Failed)
}
