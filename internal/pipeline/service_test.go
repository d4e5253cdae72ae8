package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidsqueeze/internal/model"
	"vidsqueeze/internal/progress"
	"vidsqueeze/internal/util"
)

const sampleProbeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video",
     "width": 1920, "height": 1080, "r_frame_rate": "25/1"}
  ],
  "format": {
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "100.000000",
    "size": "52428800",
    "bit_rate": "4000000"
  }
}`

// fakeRunner dispatches on the binary path: ffprobe calls return canned
// JSON, ffmpeg calls stream stats lines and write the output file.
type fakeRunner struct {
	probeJSON   string
	probeErr    error
	encodeErr   error
	encodeLines []string

	ffmpegCalls  [][]string
	ffprobeCalls int
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	if strings.Contains(spec.Path, "ffprobe") {
		f.ffprobeCalls++
		if f.probeErr != nil {
			return util.CmdResult{Code: 1}, f.probeErr
		}
		return util.CmdResult{Stdout: []byte(f.probeJSON)}, nil
	}

	f.ffmpegCalls = append(f.ffmpegCalls, spec.Args)
	for _, line := range f.encodeLines {
		if spec.StderrLine != nil {
			spec.StderrLine(line)
		}
	}
	if f.encodeErr != nil {
		return util.CmdResult{Code: 1, Stderr: []byte("conversion failed")}, f.encodeErr
	}
	out := spec.Args[len(spec.Args)-1]
	if err := os.WriteFile(out, []byte("encoded"), 0o644); err != nil {
		return util.CmdResult{Code: 1}, err
	}
	return util.CmdResult{}, nil
}

type recordingReporter struct {
	updates []progress.Update
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) { r.updates = append(r.updates, u) }
func (r *recordingReporter) Log(progress.Log)         {}
func (r *recordingReporter) Result(p progress.Result) { r.results = append(r.results, p) }

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("fake video"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestService(t *testing.T, runner util.CmdRunner, rep progress.Reporter, opts model.CLIOptions) *Service {
	t.Helper()
	return NewService(
		WithFFmpegPath("/usr/bin/ffmpeg"),
		WithFFprobePath("/usr/bin/ffprobe"),
		WithCLIOptions(opts),
		WithRunner(runner),
		WithReporter(rep),
		WithJobID("test"),
	)
}

func baseOptions(outDir string) model.CLIOptions {
	return model.CLIOptions{
		OutputDir:    outDir,
		Quality:      "medium",
		Codec:        "libx264",
		OutputFormat: "mp4",
	}
}

func TestRunJob_Success(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeInput(t, inDir, "clip.mov")

	runner := &fakeRunner{
		probeJSON: sampleProbeJSON,
		encodeLines: []string{
			"frame=  500 fps=50 q=23.0",
			"frame= 2500 fps=50 q=23.0",
		},
	}
	rep := &recordingReporter{}
	svc := newTestService(t, runner, rep, baseOptions(outDir))

	res, err := svc.RunJob(context.Background(), in)
	if err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	wantOut := filepath.Join(outDir, "clip_compressed.mp4")
	if res.Output != wantOut {
		t.Errorf("Output = %q, want %q", res.Output, wantOut)
	}
	if _, err := os.Stat(wantOut); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if res.CompressedBytes == 0 {
		t.Error("CompressedBytes = 0, want > 0")
	}
	if runner.ffprobeCalls != 1 || len(runner.ffmpegCalls) != 1 {
		t.Errorf("calls: ffprobe=%d ffmpeg=%d, want 1 and 1", runner.ffprobeCalls, len(runner.ffmpegCalls))
	}
	if len(rep.results) != 1 || rep.results[0].Err != nil {
		t.Errorf("reporter results = %+v, want one success", rep.results)
	}

	last := rep.updates[len(rep.updates)-1]
	if last.Stage != progress.StageCompleted || last.Percent != 100 {
		t.Errorf("final update = %+v, want completed at 100%%", last)
	}
}

func TestRunJob_UnsupportedFormat(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeInput(t, inDir, "notes.txt")

	runner := &fakeRunner{probeJSON: sampleProbeJSON}
	svc := newTestService(t, runner, nil, baseOptions(outDir))

	if _, err := svc.RunJob(context.Background(), in); err == nil {
		t.Fatal("RunJob() error = nil, want unsupported format")
	}
	if runner.ffprobeCalls != 0 {
		t.Error("ffprobe ran for unsupported file")
	}
}

func TestRunJob_EncodeFailureRemovesOutput(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeInput(t, inDir, "clip.mp4")

	runner := &fakeRunner{
		probeJSON: sampleProbeJSON,
		encodeErr: errors.New("command failed (exit 1)"),
	}
	rep := &recordingReporter{}
	svc := newTestService(t, runner, rep, baseOptions(outDir))

	_, err := svc.RunJob(context.Background(), in)
	if err == nil {
		t.Fatal("RunJob() error = nil, want encode failure")
	}
	if _, serr := os.Stat(filepath.Join(outDir, "clip_compressed.mp4")); !os.IsNotExist(serr) {
		t.Error("partial output left behind after failed encode")
	}
	if len(rep.results) != 1 || rep.results[0].Err == nil {
		t.Errorf("reporter results = %+v, want one failure", rep.results)
	}
}

func TestRunJob_ExplicitOutputPath(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeInput(t, inDir, "clip.mp4")
	forced := filepath.Join(outDir, "final.mp4")

	opts := baseOptions(outDir)
	opts.OutputPath = forced
	runner := &fakeRunner{probeJSON: sampleProbeJSON}
	svc := newTestService(t, runner, nil, opts)

	res, err := svc.RunJob(context.Background(), in)
	if err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}
	if res.Output != forced {
		t.Errorf("Output = %q, want %q", res.Output, forced)
	}
}

func TestPlan_BitrateModeArgs(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeInput(t, inDir, "clip.mp4")

	opts := baseOptions(outDir)
	opts.TargetSizeMB = 10
	runner := &fakeRunner{probeJSON: sampleProbeJSON}
	svc := newTestService(t, runner, nil, opts)

	pl, err := svc.Plan(context.Background(), in)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if !pl.Settings.BitrateMode {
		t.Error("BitrateMode = false, want true for target size")
	}
	// (10 * 8 * 1024^2 * 0.9) / 100s = 754974 bps
	if pl.Settings.Bitrate != "754k" {
		t.Errorf("Bitrate = %q, want 754k", pl.Settings.Bitrate)
	}
	if pl.Info.TotalFrames != 2500 {
		t.Errorf("TotalFrames = %d, want 2500", pl.Info.TotalFrames)
	}
}

func TestRunBatch_ContinuesPastFailures(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	good1 := writeInput(t, inDir, "a.mp4")
	bad := writeInput(t, inDir, "b.txt") // unsupported
	good2 := writeInput(t, inDir, "c.mkv")

	runner := &fakeRunner{probeJSON: sampleProbeJSON}
	svc := newTestService(t, runner, nil, baseOptions(outDir))

	batch := svc.RunBatch(context.Background(), []string{good1, bad, good2})
	if batch.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", batch.Total())
	}
	if len(batch.Succeeded) != 2 {
		t.Errorf("Succeeded = %d, want 2", len(batch.Succeeded))
	}
	if len(batch.Failed) != 1 || batch.Failed[0].Input != bad {
		t.Errorf("Failed = %+v, want just %q", batch.Failed, bad)
	}
}

func TestRunBatch_CanceledContext(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeInput(t, inDir, "a.mp4")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(t, &fakeRunner{probeJSON: sampleProbeJSON}, nil, baseOptions(outDir))
	batch := svc.RunBatch(ctx, []string{in})
	if len(batch.Failed) != 1 {
		t.Fatalf("Failed = %d, want 1 after cancel", len(batch.Failed))
	}
	if !errors.Is(batch.Failed[0].Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", batch.Failed[0].Err)
	}
}

func TestFindVideos(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.mkv")
	writeInput(t, dir, "a.mp4")
	writeInput(t, dir, "a_compressed.mp4") // already processed, skipped
	writeInput(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindVideos(dir)
	if err != nil {
		t.Fatalf("FindVideos() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mkv")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("FindVideos() = %v, want %v", got, want)
	}
}
