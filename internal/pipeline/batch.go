package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vidsqueeze/internal/model"
	"vidsqueeze/internal/util"
	"vidsqueeze/internal/util/media"
)

// RunBatch processes inputs sequentially, continuing past per-file failures.
// Every input ends up in exactly one bucket of the returned BatchResult.
// A forced OutputPath is ignored in batch mode; all outputs derive from the
// output directory.
func (s *Service) RunBatch(ctx context.Context, inputs []string) model.BatchResult {
	var batch model.BatchResult

	if err := util.EnsureDir(s.opts.OutputDir); err != nil {
		err = fmt.Errorf("create output directory: %w", err)
		for _, in := range inputs {
			batch.Add(model.FileResult{Input: in, Err: err})
		}
		return batch
	}

	for i, in := range inputs {
		if ctx.Err() != nil {
			batch.Add(model.FileResult{Input: in, Err: ctx.Err()})
			continue
		}

		job := *s
		job.opts.OutputPath = ""
		job.jobID = s.jobID
		if job.jobID == "" {
			job.jobID = fmt.Sprintf("job-%d", i+1)
		}

		res, err := job.RunJob(ctx, in)
		res.Err = err
		batch.Add(res)
	}

	return batch
}

// FindVideos scans dir (non-recursively) for supported video files, skipping
// files that already carry the compressed-output suffix. Results are sorted.
func FindVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !media.IsSupported(name) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasSuffix(stem, CompressedSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
