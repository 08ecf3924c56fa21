package ui

import (
	"context"
	"fmt"
	"strings"

	"wellspring/internal/journal"
	"wellspring/internal/ritual"
	"wellspring/internal/share"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type savedConfirm int

const (
	confirmNone savedConfirm = iota
	confirmDelete
	confirmClear
)

type savedListMsg struct {
	list []journal.SavedAffirmation
	err  error
}

type savedPage struct {
	loading bool
	list    []journal.SavedAffirmation
	err     error
	cursor  int
	confirm savedConfirm
}

func (m Model) loadSaved() tea.Cmd {
	vault, parent := m.deps.Vault, m.ctx
	if vault == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, opTimeout)
		defer cancel()
		list, err := vault.List(ctx)
		return savedListMsg{list: list, err: err}
	}
}

func (m Model) onSavedList(msg savedListMsg) (Model, tea.Cmd) {
	m.saved.loading = false
	m.saved.err = msg.err
	if msg.err != nil {
		return m, nil
	}
	m.saved.list = msg.list
	if m.saved.cursor >= len(msg.list) {
		m.saved.cursor = max(len(msg.list)-1, 0)
	}
	return m, nil
}

func (m Model) selectedSaved() (journal.SavedAffirmation, bool) {
	if m.saved.cursor < 0 || m.saved.cursor >= len(m.saved.list) {
		return journal.SavedAffirmation{}, false
	}
	return m.saved.list[m.saved.cursor], true
}

func (m Model) updateSaved(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.saved.list)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.saved.cursor > 0 {
			m.saved.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.saved.cursor < n-1 {
			m.saved.cursor++
		}
	case key.Matches(msg, m.keys.Share):
		if a, ok := m.selectedSaved(); ok {
			return m, m.share(share.Payload{Message: ritual.AffirmationShareText(a.Text)})
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selectedSaved(); ok {
			m.saved.confirm = confirmDelete
		}
	case key.Matches(msg, m.keys.Reset):
		if n > 0 {
			m.saved.confirm = confirmClear
		}
	}
	return m, nil
}

func (m Model) applySavedConfirm(action savedConfirm) (Model, tea.Cmd) {
	ctx, cancel := m.opCtx()
	defer cancel()

	switch action {
	case confirmDelete:
		a, ok := m.selectedSaved()
		if !ok {
			return m, nil
		}
		if _, err := m.deps.Vault.Delete(ctx, a.Text); err != nil {
			m.persistNotice("remove the affirmation", err)
			return m, nil
		}
	case confirmClear:
		if err := m.deps.Vault.Clear(ctx); err != nil {
			m.persistNotice("clear your saved affirmations", err)
			return m, nil
		}
		m.saved.cursor = 0
	default:
		return m, nil
	}

	m.saved.loading = true
	return m, tea.Batch(m.loadSaved(), m.refreshSavedIcon())
}

func (m Model) viewSaved() string {
	p := m.saved
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Saved affirmations"))
	b.WriteString("\n")

	switch {
	case p.loading && p.list == nil:
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Loading…"))
	case p.err != nil:
		b.WriteString(m.styles.Error.Render("Couldn't load saved affirmations: " + p.err.Error()))
	case len(p.list) == 0:
		b.WriteString(m.styles.Muted.Render("Nothing saved yet. Press s on an affirmation during your ritual to keep it here."))
	default:
		for i, a := range p.list {
			line := a.Text
			if !a.SavedAt.IsZero() {
				line += m.styles.Muted.Render("  " + a.SavedAt.Local().Format("Jan 2, 2006"))
			}
			if i == p.cursor {
				b.WriteString(m.styles.SelectedOption.Render(line))
			} else {
				b.WriteString(m.styles.Option.Render(line))
			}
			b.WriteString("\n")
		}
	}

	switch p.confirm {
	case confirmDelete:
		if a, ok := m.selectedSaved(); ok {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Remove “%s”? (y/n)", a.Text)))
		}
	case confirmClear:
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Remove all %d saved affirmations? (y/n)", len(p.list))))
	}
	return m.styles.Card.Render(b.String())
}
