package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
)

// mockSearcher implements driving.Searcher for testing.
type mockSearcher struct {
	results []domain.SearchResult
	err     error
	gotOpts driving.SearchOptions
}

func (m *mockSearcher) Search(_ context.Context, _ string, opts driving.SearchOptions) ([]domain.SearchResult, error) {
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeQuery(t *testing.T, app *App, query string) {
	t.Helper()
	for _, r := range query {
		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		*app = *model.(*App)
	}
}

func TestApp_SearchFlow(t *testing.T) {
	searcher := &mockSearcher{results: []domain.SearchResult{
		{Title: "K8s Talk", Score: 0.9, StartHMS: "00:01:35", Snippet: "pods are scheduled"},
		{Title: "RAG Talk", Score: 0.8, StartHMS: "01:01:40", Snippet: "vector stores"},
	}}
	app := NewApp(searcher)

	typeQuery(t, app, "scheduling")

	model, cmd := app.Update(keyMsg("enter"))
	app = model.(*App)
	require.NotNil(t, cmd, "enter should dispatch a search command")
	assert.True(t, app.searching)

	// Run the command and feed its message back, as the runtime would.
	msg := findSearchMsg(t, cmd())
	model, _ = app.Update(msg)
	app = model.(*App)

	assert.False(t, app.searching)
	require.Len(t, app.results, 2)
	assert.False(t, app.focusInput, "results take focus after a search")
	assert.Equal(t, 0, app.selected)

	view := app.View()
	assert.Contains(t, view, "K8s Talk")
	assert.Contains(t, view, "00:01:35")
}

// findSearchMsg unwraps batched commands down to the search outcome.
func findSearchMsg(t *testing.T, msg tea.Msg) tea.Msg {
	t.Helper()
	switch m := msg.(type) {
	case searchCompleted, searchFailed:
		return m
	case tea.BatchMsg:
		for _, cmd := range m {
			if cmd == nil {
				continue
			}
			if found := findSearchMsg(t, cmd()); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestApp_EmptyQueryDoesNotSearch(t *testing.T) {
	app := NewApp(&mockSearcher{})

	_, cmd := app.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.False(t, app.searching)
}

func TestApp_SearchFailureShown(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("index offline")}
	app := NewApp(searcher)

	typeQuery(t, app, "anything")
	model, cmd := app.Update(keyMsg("enter"))
	app = model.(*App)
	require.NotNil(t, cmd)

	msg := findSearchMsg(t, cmd())
	model, _ = app.Update(msg)
	app = model.(*App)

	assert.False(t, app.searching)
	assert.Contains(t, app.View(), "index offline")
}

func TestApp_RerankToggle(t *testing.T) {
	searcher := &mockSearcher{}
	app := NewApp(searcher)

	model, _ := app.Update(keyMsg("ctrl+r"))
	app = model.(*App)
	assert.True(t, app.rerank)
	assert.Contains(t, app.View(), "rerank on")

	typeQuery(t, app, "q")
	model, cmd := app.Update(keyMsg("enter"))
	app = model.(*App)
	require.NotNil(t, cmd)
	findSearchMsg(t, cmd())

	assert.True(t, searcher.gotOpts.Rerank)
}

func TestApp_ResultNavigation(t *testing.T) {
	app := NewApp(&mockSearcher{})
	app.results = []domain.SearchResult{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	app.focusInput = false

	model, _ := app.Update(keyMsg("down"))
	app = model.(*App)
	assert.Equal(t, 1, app.selected)

	model, _ = app.Update(keyMsg("down"))
	app = model.(*App)
	model, _ = app.Update(keyMsg("down"))
	app = model.(*App)
	assert.Equal(t, 2, app.selected, "selection stops at the last result")

	model, _ = app.Update(keyMsg("up"))
	app = model.(*App)
	assert.Equal(t, 1, app.selected)
}

func TestApp_EscReturnsToInputThenQuits(t *testing.T) {
	app := NewApp(&mockSearcher{})
	app.focusInput = false

	model, cmd := app.Update(keyMsg("esc"))
	app = model.(*App)
	assert.True(t, app.focusInput)
	assert.NotNil(t, cmd)

	_, cmd = app.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.NotNil(t, cmd(), "second esc quits")
}
