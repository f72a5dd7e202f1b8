package browse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/almehdi/jobview/internal/aggregate"
	"github.com/almehdi/jobview/internal/model"
	"github.com/almehdi/jobview/internal/resolve"
)

// Lines per application item in the list view (title + subtitle + blank
// separator).
const itemHeight = 3

type viewState int

const (
	viewTable viewState = iota
	viewDetail
	viewStats
)

// RefreshFunc re-fetches and re-resolves the batch. It runs off the UI
// loop; the result is committed only if its generation is still current.
type RefreshFunc func(ctx context.Context) (resolve.Result, error)

// refreshDoneMsg is sent when an async refresh completes.
type refreshDoneMsg struct {
	generation uint64
	result     resolve.Result
	err        error
}

type browseModel struct {
	apps     []model.Application
	filtered []model.Application
	stats    model.ResolutionStats

	search   textinput.Model
	viewport viewport.Model
	state    viewState
	cursor   int

	statsDim aggregate.Dimension

	refresh    RefreshFunc
	session    *resolve.Session
	refreshing bool
	notice     string

	width  int
	height int
	ready  bool
}

// Run launches the interactive browser over an enriched batch. refresh may
// be nil, which disables the `r` key.
func Run(apps []model.Application, stats model.ResolutionStats, dim aggregate.Dimension, refresh RefreshFunc) error {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 120

	m := browseModel{
		apps:     apps,
		filtered: apps,
		stats:    stats,
		search:   search,
		statsDim: dim,
		refresh:  refresh,
		session:  &resolve.Session{},
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-2, msg.Height-6)
		m.ready = true
		m.syncViewport()
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		if !m.session.Current(msg.generation) {
			// A newer refresh superseded this one; drop the stale result.
			return m, nil
		}
		if msg.err != nil {
			m.notice = fmt.Sprintf("refresh failed: %v", msg.err)
			return m, nil
		}
		m.apps = msg.result.Applications
		m.stats = msg.result.Stats
		m.notice = fmt.Sprintf("refreshed at %s", time.Now().Format("15:04:05"))
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.state == viewDetail || m.state == viewStats {
			m.state = viewTable
			m.syncViewport()
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		if m.state != viewTable {
			m.state = viewTable
			m.syncViewport()
		}
		return m, nil

	case "/":
		if m.state == viewTable {
			m.search.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.syncViewport()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.syncViewport()
		}
		return m, nil

	case "enter":
		if m.state == viewTable && len(m.filtered) > 0 {
			m.state = viewDetail
			m.syncViewport()
		}
		return m, nil

	case "s":
		if m.state == viewStats {
			m.statsDim = nextDimension(m.statsDim)
		} else {
			m.state = viewStats
		}
		m.syncViewport()
		return m, nil

	case "r":
		if m.refresh == nil || m.refreshing {
			return m, nil
		}
		m.refreshing = true
		m.notice = "refreshing…"
		generation := m.session.Begin()
		return m, m.doRefresh(generation)
	}
	return m, nil
}

func (m browseModel) doRefresh(generation uint64) tea.Cmd {
	refresh := m.refresh
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		result, err := refresh(ctx)
		return refreshDoneMsg{generation: generation, result: result, err: err}
	}
}

// applyFilter keeps records where any field contains the search text,
// case-insensitively — the same match the original table used.
func (m *browseModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		m.filtered = m.apps
	} else {
		var filtered []model.Application
		for _, app := range m.apps {
			if matchesQuery(app, query) {
				filtered = append(filtered, app)
			}
		}
		m.filtered = filtered
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

func matchesQuery(app model.Application, query string) bool {
	fields := []string{
		app.ID, app.Title, app.Company, app.Location, app.WorkStyle,
		app.Status, app.AppliedAt.Raw, app.ReceivedAt.Raw, app.Link,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func nextDimension(dim aggregate.Dimension) aggregate.Dimension {
	for i, d := range aggregate.Dimensions {
		if d == dim {
			return aggregate.Dimensions[(i+1)%len(aggregate.Dimensions)]
		}
	}
	return aggregate.Dimensions[0]
}

// syncViewport rebuilds the viewport content for the current state and
// keeps the cursor visible.
func (m *browseModel) syncViewport() {
	if !m.ready {
		return
	}
	switch m.state {
	case viewTable:
		m.viewport.SetContent(m.renderList())
		m.scrollToCursor()
	case viewDetail:
		m.viewport.SetContent(m.renderDetail())
		m.viewport.GotoTop()
	case viewStats:
		m.viewport.SetContent(m.renderStats())
		m.viewport.GotoTop()
	}
}

func (m *browseModel) scrollToCursor() {
	top := m.cursor * itemHeight
	bottom := top + itemHeight
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}
