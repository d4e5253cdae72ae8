package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"vidsqueeze/internal/model"
	"vidsqueeze/internal/pipeline"
	"vidsqueeze/internal/progress"
	"vidsqueeze/internal/util/format"
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	// Jobs; files are processed strictly one at a time.
	files    []string
	opts     model.CLIOptions
	jobOrder []string
	jobs     map[string]*jobState
	running  bool
	next     int // next index in files to start

	// UI
	width, height int
	styles        Styles

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, files []string, opts model.CLIOptions) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(files))
	order := make([]string, 0, len(files))
	for i, f := range files {
		id := toID(i)
		js := newJobState(id, f, sty)
		js.bar = bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(40))
		jobs[id] = &js
		order = append(order, id)
	}

	return Model{
		ctx:      c,
		cancel:   cancel,
		files:    files,
		opts:     opts,
		jobs:     jobs,
		jobOrder: order,
		styles:   sty,
		eventCh:  make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		sp := m.jobs[id].spinner
		cmds = append(cmds, sp.Tick)
	}
	// Listen for reporter events
	cmds = append(cmds, m.listenEventsCmd())
	// Kick off the first file
	cmds = append(cmds, func() tea.Msg { return startNextMsg{} })
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case jobUpdateMsg:
		u := msg.U
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			js.percent = u.Percent
			if u.Message != "" {
				js.status = u.Message
			}
			if u.Frame > 0 {
				js.frame = u.Frame
				js.total = u.Total
				js.status = fmt.Sprintf("frame %d/%d", u.Frame, u.Total)
			}
		}
	case jobLogMsg:
		l := msg.L
		if js, ok := m.jobs[l.JobID]; ok {
			// small ring buffer
			line := strings.TrimRight(l.Line, "\r\n")
			if len(js.logsRing) > 1000 {
				js.logsRing = js.logsRing[1:]
			}
			js.logsRing = append(js.logsRing, line)
		}
	case jobResultMsg:
		r := msg.R
		if js, ok := m.jobs[r.JobID]; ok {
			js.done = true
			js.err = r.Err
			if r.Err == nil {
				js.stage = progress.StageCompleted
				js.percent = 100
				js.outputPath = r.OutputPath
				js.bytes = r.Bytes
				if r.OutputPath != "" {
					name := filepath.Base(r.OutputPath)
					size := format.HumanizeBytes(r.Bytes)
					js.status = fmt.Sprintf("Saved: %s (%s)", name, size)
				} else {
					js.status = "Completed"
				}
			} else {
				js.stage = progress.StageError
				js.status = r.Err.Error()
				js.percent = -1
			}
			m.running = false
			// Start the next file if any remain
			next, cmd := m.startNext()
			return next, tea.Batch(cmd, next.listenEventsCmd())
		}
	case startNextMsg:
		next, cmd := m.startNext()
		return next, tea.Batch(cmd, next.listenEventsCmd())
	case allDoneMsg:
		return m, tea.Quit
	}

	// Update per-job components (spinner)
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	// Keep listening for events
	cmds = append(cmds, m.listenEventsCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	summary := m.viewSummary()
	if summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// startNext launches the next queued file, or quits when everything is done.
// It runs inside Update so the bookkeeping survives the model copy.
func (m Model) startNext() (Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}
	if m.running {
		return m, nil
	}
	if m.next >= len(m.files) {
		return m, tea.Quit
	}

	idx := m.next
	m.next++
	m.running = true
	jobID := m.jobOrder[idx]
	if js := m.jobs[jobID]; js != nil {
		js.started = true
		js.status = "Probing"
		js.stage = progress.StageProbing
	}
	go m.runJob(jobID, m.files[idx])
	return m, nil
}

func (m Model) runJob(jobID, file string) {
	rep := teaReporter{ch: m.eventCh}

	svc := pipeline.NewService(
		pipeline.WithFFmpegPath(m.opts.FFmpegPath),
		pipeline.WithFFprobePath(m.opts.FFprobePath),
		pipeline.WithCLIOptions(m.opts),
		pipeline.WithReporter(rep),
		pipeline.WithJobID(jobID),
	)

	// RunJob reports progress and exactly one final Result through the
	// reporter on both success and failure paths.
	_, _ = svc.RunJob(m.ctx, file)
}

type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Block on completion messages to ensure they're delivered
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.ch <- jobUpdateMsg{U: u}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	// Always block on Result messages - they're critical
	r.ch <- jobResultMsg{R: res}
}

func toID(i int) string {
	return "job-" + strconv.Itoa(i)
}
