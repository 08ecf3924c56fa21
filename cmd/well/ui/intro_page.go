package ui

import (
	"fmt"
	"strings"

	"wellspring/internal/onboarding"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) viewSplash() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(onboarding.Splash),
		m.styles.Subtitle.Render(onboarding.Tagline),
		"",
		m.spinner.View(),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Select) {
		return m, nil
	}
	m.onboard.Next()
	if !m.onboard.Done() {
		return m, nil
	}

	ctx, cancel := m.opCtx()
	defer cancel()
	m.persistNotice("save onboarding progress", onboarding.MarkCompleted(ctx, m.deps.Store))

	if m.startup != nil && m.startup.hasProfile {
		return m.enterPage(pageRitual)
	}
	return m.enterPage(pageQuiz)
}

func (m Model) viewOnboarding() string {
	card := m.onboard.Card()
	dots := make([]string, len(onboarding.Cards()))
	for i := range dots {
		if i == m.onboard.Index() {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	next := "Next"
	if m.onboard.Index() == len(dots)-1 {
		next = "Begin"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(card.Title))
	b.WriteString("\n")
	b.WriteString(m.md.Render(card.Body))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(strings.Join(dots, " ")))
	b.WriteString("   ")
	b.WriteString(m.styles.SelectedOption.Render(fmt.Sprintf("%s ›", next)))
	return m.styles.Content.Render(m.styles.Card.Render(b.String()))
}
