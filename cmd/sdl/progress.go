package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

var (
	colorCyan  = lipgloss.Color("51")
	colorGreen = lipgloss.Color("42")
	colorDim   = lipgloss.Color("240")

	progressTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	progressStatStyle  = lipgloss.NewStyle().Foreground(colorDim)
	progressDoneStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// progressMsg carries a sim.ProgressEvent into the Bubble Tea loop.
type progressMsg sdl.ProgressEvent

// simDoneMsg carries the final outcome of the background simulate() call.
type simDoneMsg struct {
	result *sdl.SimulationResult
	diags  []diag.Diagnostic
	err    error
}

// simProgressModel renders a progress bar while a simulate() call runs on
// a background goroutine, fed via a channel (the Bubble Tea convention the
// teacher uses for streaming server events into pkg/tui.Model).
type simProgressModel struct {
	bar      progress.Model
	events   <-chan tea.Msg
	scenario string
	total    int
	done     bool
	result   *sdl.SimulationResult
	diags    []diag.Diagnostic
	err      error
}

func newSimProgressModel(scenarioName string, totalRuns int, events <-chan tea.Msg) simProgressModel {
	return simProgressModel{
		bar:      progress.New(progress.WithDefaultGradient()),
		events:   events,
		scenario: scenarioName,
		total:    totalRuns,
	}
}

func (m simProgressModel) Init() tea.Cmd {
	return waitForMsg(m.events)
}

func waitForMsg(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m simProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progressMsg:
		pct := 0.0
		if msg.TotalRuns > 0 {
			pct = float64(msg.CompletedRuns) / float64(msg.TotalRuns)
		}
		cmd := m.bar.SetPercent(pct)
		return m, tea.Batch(cmd, waitForMsg(m.events))
	case simDoneMsg:
		m.done = true
		m.result = msg.result
		m.diags = msg.diags
		m.err = msg.err
		return m, tea.Quit
	case progress.FrameMsg:
		newModel, cmd := m.bar.Update(msg)
		m.bar = newModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m simProgressModel) View() string {
	if m.done {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("simulate failed: %v\n", m.err))
		}
		return progressDoneStyle.Render(fmt.Sprintf("done — %d runs in %s\n", m.result.Runs, m.result.Elapsed.Round(time.Millisecond)))
	}
	header := progressTitleStyle.Render(fmt.Sprintf("simulating %q", m.scenario))
	return fmt.Sprintf("%s\n%s\n", header, m.bar.View())
}

// runSimulateWithProgress drives sdl.Simulate on a background goroutine,
// rendering a Bubble Tea progress bar fed by the scenario's simulate
// callback, grounded on the teacher's tui.StartEngine pattern of streaming
// engine events into the TUI via a channel instead of a callback closure
// over the Model itself.
func runSimulateWithProgress(scenario *sdl.Scenario, cfg *sdl.SimulateConfig, estimatedRuns int) (*sdl.SimulationResult, []diag.Diagnostic, error) {
	events := make(chan tea.Msg, 16)
	if cfg == nil {
		cfg = &sdl.SimulateConfig{}
	}

	cfg.OnProgress = func(e sdl.ProgressEvent) {
		select {
		case events <- progressMsg(e):
		default:
		}
	}

	go func() {
		result, diags, err := sdl.Simulate(scenario, cfg)
		events <- simDoneMsg{result: result, diags: diags, err: err}
	}()

	model := newSimProgressModel(scenario.Name, estimatedRuns, events)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return nil, nil, err
	}
	fm := final.(simProgressModel)
	return fm.result, fm.diags, fm.err
}
