package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"vidsqueeze/internal/model"
)

// Run launches the TUI and processes the files one at a time. The returned
// BatchResult covers every input; files never attempted because the user
// quit early are recorded as canceled.
func Run(ctx context.Context, files []string, opts model.CLIOptions) (model.BatchResult, error) {
	m := NewModel(ctx, files, opts)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()

	var batch model.BatchResult
	fm, ok := final.(Model)
	if !ok {
		if err != nil {
			return batch, err
		}
		return batch, fmt.Errorf("unexpected final model")
	}

	for _, id := range fm.jobOrder {
		js := fm.jobs[id]
		r := model.FileResult{
			Input:           js.path,
			Output:          js.outputPath,
			CompressedBytes: js.bytes,
			Err:             js.err,
		}
		if !js.done && r.Err == nil {
			r.Err = context.Canceled
		}
		batch.Add(r)
	}

	if err != nil && ctx.Err() == nil {
		return batch, err
	}
	return batch, nil
}
