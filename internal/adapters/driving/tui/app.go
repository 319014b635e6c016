// Package tui provides an interactive terminal interface for searching
// the index, built on Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morphuslabs/podseek/internal/adapters/driving/tui/styles"
	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
)

// searchCompleted delivers funnel results to the update loop.
type searchCompleted struct {
	results []domain.SearchResult
}

// searchFailed delivers a funnel error to the update loop.
type searchFailed struct {
	err error
}

// App is the Bubble Tea model for the search interface.
type App struct {
	styles   *styles.Styles
	input    textinput.Model
	spinner  spinner.Model
	searcher driving.Searcher

	results   []domain.SearchResult
	selected  int
	searching bool
	rerank    bool
	err       error

	width      int
	height     int
	focusInput bool
}

// NewApp creates the search interface bound to a searcher.
func NewApp(searcher driving.Searcher) *App {
	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about any indexed talk..."
	input.Focus()
	input.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = s.Timestamp

	return &App{
		styles:     s,
		input:      input,
		spinner:    spin,
		searcher:   searcher,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// Run starts the interface and blocks until the user quits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles terminal events and search outcomes.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case searchCompleted:
		a.searching = false
		a.results = msg.results
		a.selected = 0
		a.err = nil
		if len(a.results) > 0 {
			a.focusInput = false
			a.input.Blur()
		}
		return a, nil

	case searchFailed:
		a.searching = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.searching {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		if !a.focusInput {
			a.focusInput = true
			a.input.Focus()
			return a, textinput.Blink
		}
		return a, tea.Quit

	case "ctrl+r":
		a.rerank = !a.rerank
		return a, nil

	case "enter":
		if a.focusInput && !a.searching {
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			a.searching = true
			a.err = nil
			return a, tea.Batch(a.spinner.Tick, a.search(query))
		}
		return a, nil

	case "up", "k":
		if !a.focusInput && a.selected > 0 {
			a.selected--
		}
		return a, nil

	case "down", "j":
		if !a.focusInput && a.selected < len(a.results)-1 {
			a.selected++
		}
		return a, nil

	case "tab":
		a.focusInput = !a.focusInput
		if a.focusInput {
			a.input.Focus()
			return a, textinput.Blink
		}
		a.input.Blur()
		return a, nil
	}

	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// search runs the funnel off the update loop.
func (a *App) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.searcher.Search(context.Background(), query, driving.SearchOptions{
			TopN:   5,
			Rerank: a.rerank,
		})
		if err != nil {
			return searchFailed{err: err}
		}
		return searchCompleted{results: results}
	}
}

// View renders the interface.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("podseek"))
	if a.rerank {
		b.WriteString(a.styles.Muted.Render("  (rerank on)"))
	}
	b.WriteString("\n\n")

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n\n")

	switch {
	case a.searching:
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" searching..."))
		b.WriteString("\n")
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.results != nil:
		b.WriteString(a.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter search · tab focus · ctrl+r rerank · esc quit"))
	return b.String()
}

func (a *App) renderResults() string {
	if len(a.results) == 0 {
		return a.styles.Muted.Render("No results found.") + "\n"
	}

	var b strings.Builder
	for i, r := range a.results {
		header := fmt.Sprintf("[%d] %s", i+1, r.Title)
		if !a.focusInput && i == a.selected {
			b.WriteString(a.styles.Selected.Render(header))
		} else {
			b.WriteString(a.styles.Normal.Render(header))
		}
		b.WriteString(a.styles.Score.Render(fmt.Sprintf("  %.2f", r.Score)))
		b.WriteString("\n")

		b.WriteString("    ")
		b.WriteString(a.styles.Timestamp.Render(r.StartHMS))
		if jump := domain.JumpURL(r.VideoURL, r.StartSeconds); jump != "" {
			b.WriteString(a.styles.Muted.Render("  " + jump))
		}
		b.WriteString("\n")

		if r.Snippet != "" {
			b.WriteString(a.styles.Muted.Render("    " + truncate(r.Snippet, a.width-8)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncate bounds a single display line.
func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
