package ui

import (
	"context"
	"fmt"
	"strings"

	"wellspring/internal/catalog"
	"wellspring/internal/quiz"
	"wellspring/internal/share"
	"wellspring/internal/stats"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardMsg struct {
	dashboard stats.Dashboard
	err       error
}

type statsPage struct {
	loading      bool
	dashboard    *stats.Dashboard
	err          error
	confirmReset bool
	bars         map[catalog.Category]progress.Model
	width        int
}

func newStatsPage() statsPage {
	p := statsPage{bars: make(map[catalog.Category]progress.Model, len(catalog.Categories))}
	p.setWidth(80)
	return p
}

// setWidth sizes the mood bars for a terminal of the given width.
func (p *statsPage) setWidth(w int) {
	p.width = w
	barWidth := max(min(w-30, 50), 10)
	for _, c := range catalog.Categories {
		bar := progress.New(progress.WithSolidFill(string(MoodColor(c))), progress.WithoutPercentage())
		bar.Width = barWidth
		p.bars[c] = bar
	}
}

func (m Model) loadDashboard() tea.Cmd {
	loader, parent := m.deps.Stats, m.ctx
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, opTimeout)
		defer cancel()
		d, err := loader.Load(ctx)
		return dashboardMsg{dashboard: d, err: err}
	}
}

func (m Model) onDashboard(msg dashboardMsg) (Model, tea.Cmd) {
	m.stats.loading = false
	m.stats.err = msg.err
	if msg.err != nil {
		m.log.Warn("dashboard load failed")
		return m, nil
	}
	d := msg.dashboard
	m.stats.dashboard = &d
	return m, nil
}

func (m Model) updateStats(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Share):
		if m.stats.dashboard == nil {
			return m, nil
		}
		return m, m.share(share.Payload{Message: stats.ShareText(m.stats.dashboard.Summary)})
	case key.Matches(msg, m.keys.Reset):
		m.stats.confirmReset = true
	}
	return m, nil
}

// resetStats clears the mood history, then reloads the dashboard.
func (m Model) resetStats() (Model, tea.Cmd) {
	ctx, cancel := m.opCtx()
	defer cancel()
	removed, err := m.deps.Stats.Reset(ctx)
	if err != nil {
		m.persistNotice("reset your statistics", err)
		return m, nil
	}
	m.notice = fmt.Sprintf("Cleared %d mood entries.", removed)
	m.stats.loading = true
	return m, m.loadDashboard()
}

func (m Model) viewStats() string {
	p := m.stats
	switch {
	case p.confirmReset:
		return m.styles.Card.Render(m.styles.Warning.Render("Reset all mood statistics?") + "\n\n" +
			m.styles.Body.Render("This removes every recorded mood. Your quiz result and saved affirmations stay.") + "\n\n" +
			m.styles.Muted.Render("y: reset · n: keep"))
	case p.loading && p.dashboard == nil:
		return m.spinner.View() + " " + m.styles.Muted.Render("Loading your statistics…")
	case p.err != nil && p.dashboard == nil:
		return m.styles.Error.Render("Couldn't load statistics: " + p.err.Error())
	case p.dashboard == nil:
		return m.styles.Muted.Render("No statistics yet.")
	}

	d := p.dashboard
	desc := quiz.Describe(d.Profile)

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("You are a"))
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(desc.Title))
	if !d.HasProfile {
		b.WriteString(" ")
		b.WriteString(m.styles.Muted.Render("(take the quiz to find your type)"))
	}
	b.WriteString("\n\n")

	rows := make([]string, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		pct := d.Summary.Percent(c)
		label := lipgloss.NewStyle().Width(10).Foreground(MoodColor(c)).Render(c.Short())
		rows = append(rows, fmt.Sprintf("%s %s %3d%%", label, p.bars[c].ViewAs(float64(pct)/100), pct))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Bold.Render(fmt.Sprintf("%d", d.Summary.TotalRituals)))
	b.WriteString(m.styles.Body.Render(" rituals completed"))
	if d.Skipped > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d unreadable entries skipped", d.Skipped)))
	}
	return m.styles.Card.Render(b.String())
}
