package chat

import (
	"context"
	"testing"

	"aidoc/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, h Handler) (Model, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewModel(ctx, cancel, h, newPlainView(t), session.DefaultPDFName), ctx
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 100-len(promptLabel)-1, m.input.Width)
}

func TestModel_EnterOnBlankIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
}

func TestModel_PromptGoesBusy(t *testing.T) {
	h := &fakeHandler{}
	m, _ := newTestModel(t, h)
	m = typeText(t, m, "Write a poem")
	assert.Equal(t, "Write a poem", m.input.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Equal(t, "Fetching response...", m.status)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Fetching response...")
}

func TestModel_KeysIgnoredWhileBusy(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m = typeText(t, m, "Write a poem")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.busy)

	m = typeText(t, m, "more")
	assert.Empty(t, m.input.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.busy)
}

func TestModel_HandleRunsCommand(t *testing.T) {
	h := &fakeHandler{}
	m, _ := newTestModel(t, h)

	msg := m.handle(session.Command{Kind: session.CommandExportPDF, Filename: "poem.pdf"})()
	om, ok := msg.(outcomeMsg)
	require.True(t, ok)
	assert.Equal(t, session.OutcomeExported, om.outcome.Kind)
	assert.Equal(t, "/tmp/poem.pdf", om.outcome.Path)
	require.Len(t, h.Commands(), 1)
}

func TestModel_OutcomeClearsBusy(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m.busy = true
	m.status = "Fetching response..."

	m, cmd := update(t, m, outcomeMsg{outcome: session.Outcome{Kind: session.OutcomeDocument, Document: "# Poem"}})
	assert.False(t, m.busy)
	assert.Empty(t, m.status)
	assert.NotNil(t, cmd)
	assert.False(t, m.quitting)
	assert.Contains(t, m.View(), promptLabel)
}

func TestModel_NoneOutcomePrintsNothing(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m.busy = true
	m, cmd := update(t, m, outcomeMsg{outcome: session.Outcome{Kind: session.OutcomeNone}})
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
}

func TestModel_ExitOutcomeQuits(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m.busy = true
	m, cmd := update(t, m, outcomeMsg{outcome: session.Outcome{Kind: session.OutcomeExit}})
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestModel_CtrlCCancelsInFlight(t *testing.T) {
	m, ctx := newTestModel(t, &fakeHandler{})
	m = typeText(t, m, "Write a poem")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.busy)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	// A late outcome after quitting is dropped.
	m, cmd = update(t, m, outcomeMsg{outcome: session.Outcome{Kind: session.OutcomeInterrupted}})
	assert.Nil(t, cmd)
}

func TestModel_CtrlDOnEmptyInputExits(t *testing.T) {
	m, _ := newTestModel(t, &fakeHandler{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Empty(t, m.status)
}
