package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/victhorio/cachebench/bench"
	"github.com/victhorio/cachebench/bench/bedrock"
	"github.com/victhorio/cachebench/bench/core"
	"github.com/victhorio/cachebench/bench/report"
)

var (
	tuiTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	tuiQuestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tuiDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

type benchEventMsg core.Event
type benchDoneMsg struct {
	result *core.RunResult
	err    error
}
type eventsClosedMsg struct{}

// benchModel shows a single run in flight: finished turns as fixed lines, the
// turn in progress behind a spinner.
type benchModel struct {
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	title       string
	lines       []string
	question    string
	showAnswers bool
	cached      bool

	events <-chan core.Event
	done   <-chan benchDoneMsg
	cancel context.CancelFunc

	result   *core.RunResult
	err      error
	finished bool

	width int
}

func newBenchModel(
	events <-chan core.Event,
	done <-chan benchDoneMsg,
	cancel context.CancelFunc,
	showAnswers, cached bool,
) benchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	// Markdown rendering is best effort; a nil renderer falls back to the
	// plain wrapped answer.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		renderer = nil
	}

	return benchModel{
		spinner:     sp,
		renderer:    renderer,
		showAnswers: showAnswers,
		cached:      cached,
		events:      events,
		done:        done,
		cancel:      cancel,
		width:       80,
	}
}

// runLive drives a single run with a live bubbletea view. The final summary is
// printed by the caller once the program exits.
func runLive(
	ctx context.Context,
	runner *bench.Runner,
	modelID bedrock.ModelID,
	mode core.Mode,
) (*core.RunResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan core.Event, 8)
	done := make(chan benchDoneMsg, 1)

	go func() {
		result, err := runner.Run(ctx, modelID, mode, events)
		close(events)
		done <- benchDoneMsg{result: result, err: err}
	}()

	m := newBenchModel(events, done, cancel, runFlags.answers, mode == core.ModeCached)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("runLive: %w", err)
	}

	fm, ok := final.(benchModel)
	if !ok {
		return nil, fmt.Errorf("runLive: unexpected final model %T", final)
	}
	if fm.err != nil {
		return nil, fm.err
	}
	if fm.result == nil {
		return nil, fmt.Errorf("runLive: run was interrupted")
	}
	return fm.result, nil
}

func (m benchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m benchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, nil // quit arrives via benchDoneMsg
		}
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case benchEventMsg:
		return m.applyEvent(core.Event(msg))

	case eventsClosedMsg:
		return m, m.waitForDone()

	case benchDoneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		m.question = ""
		return m, tea.Quit
	}

	return m, nil
}

func (m benchModel) applyEvent(ev core.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case core.EvRunStart:
		m.title = fmt.Sprintf("%s — %s", ev.Model, ev.Mode.Label())
	case core.EvTurnStart:
		m.question = ev.Question
	case core.EvTurnDone:
		m.question = ""
		m.lines = append(m.lines, report.TurnLine(ev.Turn, m.cached))
		if m.showAnswers {
			m.lines = append(m.lines, m.renderAnswer(ev.Turn.Answer))
		}
	}
	return m, m.waitForEvent()
}

func (m benchModel) renderAnswer(answer string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(answer); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return report.WrapAnswer(answer, min(m.width, 80))
}

func (m benchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		return benchEventMsg(ev)
	}
}

func (m benchModel) waitForDone() tea.Cmd {
	return func() tea.Msg {
		return <-m.done
	}
}

func (m benchModel) View() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "cachebench"
	}
	b.WriteString(tuiTitleStyle.Render(title))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(tuiErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.finished:
		b.WriteString(tuiDoneStyle.Render("Done."))
		b.WriteString("\n")
	case m.question != "":
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), tuiQuestionStyle.Render(m.question)))
		b.WriteString("\n")
	default:
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}

	return b.String()
}
