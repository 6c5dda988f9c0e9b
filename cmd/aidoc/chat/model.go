// Package chat provides the interactive front ends for aidoc.
//   - model.go: bubbletea TUI (this file)
//   - plain.go: line mode for pipes and dumb terminals
//   - view.go: outcome rendering shared by both
//   - run.go: front-end selection
package chat

import (
	"context"

	"aidoc/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler dispatches one parsed command. *session.Session implements it.
type Handler interface {
	Handle(ctx context.Context, cmd session.Command) session.Outcome
}

// outcomeMsg carries the result of an async Handle back into Update.
type outcomeMsg struct {
	outcome session.Outcome
}

// Model is the bubbletea model for the interactive loop. Finished output is
// printed above the input with tea.Println so the terminal keeps a transcript.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	handler Handler
	view    *View

	input   textinput.Model
	spinner spinner.Model

	defaultPDF string
	busy       bool
	status     string
	quitting   bool
	width      int
}

// NewModel creates the TUI model. cancel aborts in-flight requests when the
// user presses Ctrl+C.
func NewModel(ctx context.Context, cancel context.CancelFunc, h Handler, view *View, defaultPDF string) Model {
	styles := view.Styles()

	ti := textinput.New()
	ti.Prompt = promptLabel
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput
	ti.Placeholder = "Describe a document, /pdf [filename] or /exit"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		ctx:        ctx,
		cancel:     cancel,
		handler:    h,
		view:       view,
		input:      ti,
		spinner:    sp,
		defaultPDF: defaultPDF,
	}
}

// Init prints the banner and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.Println(m.view.Banner()), textinput.Blink)
}

// Update handles keys, outcomes and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		return m.handleOutcome(msg.outcome)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptLabel)+1 {
			m.input.Width = msg.Width - len(promptLabel) - 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.cancel()
		m.quitting = true
		return m, tea.Sequence(tea.Println(m.view.Farewell(true)), tea.Quit)
	}

	// Busy: only Ctrl+C gets through
	if m.busy || m.quitting {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlD:
		if m.input.Value() != "" {
			break
		}
		return m.submit("/exit", false)
	case tea.KeyEnter:
		line := m.input.Value()
		m.input.Reset()
		return m.submit(line, true)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(line string, echo bool) (tea.Model, tea.Cmd) {
	cmd := session.ParseCommand(line, m.defaultPDF)
	if cmd.Kind == session.CommandIgnore {
		return m, nil
	}

	m.busy = true
	m.status = m.view.Status(cmd.Kind)

	var echoCmd tea.Cmd
	if echo {
		echoCmd = tea.Println(m.view.Echo(line))
	}
	return m, tea.Sequence(echoCmd, tea.Batch(m.spinner.Tick, m.handle(cmd)))
}

func (m Model) handle(cmd session.Command) tea.Cmd {
	ctx, h := m.ctx, m.handler
	return func() tea.Msg {
		return outcomeMsg{outcome: h.Handle(ctx, cmd)}
	}
}

func (m Model) handleOutcome(o session.Outcome) (tea.Model, tea.Cmd) {
	m.busy = false
	m.status = ""
	if m.quitting {
		return m, nil
	}

	text := m.view.Outcome(o)
	if o.Terminal() {
		m.quitting = true
		return m, tea.Sequence(tea.Println(text), tea.Quit)
	}
	if text == "" {
		return m, nil
	}
	return m, tea.Println(text)
}

// View renders the live part of the screen: the spinner or the input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.busy {
		return m.spinner.View() + " " + m.view.Styles().Status.Render(m.status) + "\n"
	}
	return m.input.View() + "\n"
}
