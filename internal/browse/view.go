package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/almehdi/jobview/internal/aggregate"
	"github.com/almehdi/jobview/internal/model"
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	unresolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

func (m browseModel) View() string {
	if !m.ready {
		return "loading…"
	}

	var title string
	switch m.state {
	case viewDetail:
		title = "application"
	case viewStats:
		title = fmt.Sprintf("stats by %s", m.statsDim)
	default:
		title = fmt.Sprintf("applications (%d/%d)", len(m.filtered), len(m.apps))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(borderStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m browseModel) statusBar() string {
	parts := []string{
		fmt.Sprintf("total %d", m.stats.Total),
		fmt.Sprintf("pre-resolved %d", m.stats.PreResolved),
		fmt.Sprintf("geocoded %d", m.stats.NewlyResolved),
		fmt.Sprintf("failed %d", m.stats.Failed),
	}
	help := "↑/↓ move · enter detail · / search · s stats · r refresh · q quit"
	bar := statusBarStyle.Render(strings.Join(parts, " · ") + "   " + help)
	if m.notice != "" {
		bar += " " + noticeStyle.Render(m.notice)
	}
	return bar
}

func (m browseModel) renderList() string {
	if len(m.filtered) == 0 {
		return itemSubtitleStyle.Render("no applications match")
	}

	var b strings.Builder
	for i, app := range m.filtered {
		title := fmt.Sprintf("%s — %s", app.Title, app.Company)
		subtitle := fmt.Sprintf("%s · %s · %s", orDash(app.Location), orDash(app.Status), orDash(app.AppliedAt.Raw))
		if app.Coords == nil {
			subtitle += " · " + unresolvedStyle.Render("no position")
		}

		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render("▸ " + title))
			b.WriteString("\n")
			b.WriteString(selectedSubtitleStyle.Render("  " + subtitle))
		} else {
			b.WriteString(itemTitleStyle.Render("  " + title))
			b.WriteString("\n")
			b.WriteString(itemSubtitleStyle.Render("  " + subtitle))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m browseModel) renderDetail() string {
	if m.cursor >= len(m.filtered) {
		return ""
	}
	app := m.filtered[m.cursor]

	row := func(label, value string) string {
		return detailLabelStyle.Render(label) + orDash(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("ID", app.ID))
	b.WriteString(row("Title", app.Title))
	b.WriteString(row("Company", app.Company))
	b.WriteString(row("Location", app.Location))
	b.WriteString(row("Work style", app.WorkStyle))
	b.WriteString(row("Status", app.Status))
	b.WriteString(row("Applied", app.AppliedAt.Raw))
	b.WriteString(row("Received", app.ReceivedAt.Raw))
	b.WriteString(row("Link", app.Link))
	b.WriteString(row("Position", formatCoords(app.Coords)))
	return b.String()
}

// renderStats draws horizontal count bars for the selected dimension,
// scaled to the widest bucket.
func (m browseModel) renderStats() string {
	buckets := aggregate.GroupBy(m.apps, m.statsDim)
	if len(buckets) == 0 {
		return itemSubtitleStyle.Render("nothing to chart")
	}

	maxCount := 0
	keyWidth := 0
	for _, bucket := range buckets {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
		if len(bucket.Key) > keyWidth {
			keyWidth = len(bucket.Key)
		}
	}
	if keyWidth > 28 {
		keyWidth = 28
	}

	barSpace := m.width - keyWidth - 12
	if barSpace < 10 {
		barSpace = 10
	}

	var b strings.Builder
	for _, bucket := range buckets {
		key := bucket.Key
		if len(key) > keyWidth {
			key = key[:keyWidth-1] + "…"
		}
		length := bucket.Count * barSpace / maxCount
		if length < 1 {
			length = 1
		}
		b.WriteString(fmt.Sprintf("%-*s %s %d\n", keyWidth, key, barStyle.Render(strings.Repeat("█", length)), bucket.Count))
	}
	b.WriteString("\n")
	b.WriteString(itemSubtitleStyle.Render("s: next dimension · esc: back"))
	return b.String()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatCoords(c *model.Coordinates) string {
	if c == nil {
		return "unresolved"
	}
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}
