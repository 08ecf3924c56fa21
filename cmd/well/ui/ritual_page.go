package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellspring/internal/catalog"
	"wellspring/internal/choreo"
	"wellspring/internal/ritual"
	"wellspring/internal/share"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type countdownTickMsg struct {
	token choreo.Token
}

// noMood is the mood cursor before the user has picked anything.
const noMood = -1

type ritualPage struct {
	session    *ritual.Session
	saved      bool // current affirmation is in the vault
	moodCursor int
}

func newRitualPage(e *ritual.Engine) ritualPage {
	if e == nil {
		return ritualPage{moodCursor: noMood}
	}
	return ritualPage{session: e.NewSession(), moodCursor: noMood}
}

// moveMood steps the cursor by delta. From noMood, down lands on the first
// option and up on the last.
func moveMood(cursor, delta int) int {
	n := len(catalog.Categories)
	if cursor == noMood {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return (cursor + delta + n) % n
}

// moodShortcut maps the keys 1..n to a mood index.
func moodShortcut(msg tea.KeyMsg) (int, bool) {
	k := msg.String()
	if len(k) != 1 || k[0] < '1' {
		return 0, false
	}
	i := int(k[0] - '1')
	return i, i < len(catalog.Categories)
}

func countdownTick(token choreo.Token) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownTickMsg{token: token} })
}

func (m Model) onCountdownTick(msg countdownTickMsg) (Model, tea.Cmd) {
	s := m.ritual.session
	if s == nil || !m.deps.Ritual.Tick(s, msg.token, time.Second) {
		return m, nil
	}
	if s.TimerRunning {
		return m, countdownTick(msg.token)
	}
	return m, nil
}

type savedIconMsg struct {
	text  string
	saved bool
}

// refreshSavedIcon looks up whether the shown affirmation is already saved.
func (m Model) refreshSavedIcon() tea.Cmd {
	s := m.ritual.session
	if m.deps.Vault == nil || s == nil || s.Affirmation == "" {
		return nil
	}
	vault, parent, log, text := m.deps.Vault, m.ctx, m.log, s.Affirmation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, opTimeout)
		defer cancel()
		saved, err := vault.Contains(ctx, text)
		if err != nil {
			log.Debug("saved-state lookup failed", zap.Error(err))
			return nil
		}
		return savedIconMsg{text: text, saved: saved}
	}
}

func (m Model) onSavedIcon(msg savedIconMsg) (Model, tea.Cmd) {
	if s := m.ritual.session; s != nil && s.Affirmation == msg.text {
		m.ritual.saved = msg.saved
	}
	return m, nil
}

func (m Model) updateRitual(msg tea.KeyMsg) (Model, tea.Cmd) {
	e, s := m.deps.Ritual, m.ritual.session
	if e == nil || s == nil {
		return m, nil
	}

	if key.Matches(msg, m.keys.Reset) {
		e.Reset(s)
		m.ritual.saved = false
		m.ritual.moodCursor = noMood
		return m, nil
	}

	switch s.Stage {
	case ritual.StageTask:
		switch {
		case key.Matches(msg, m.keys.Timer):
			if s.TimerRunning {
				return m, nil
			}
			token, err := e.StartTimer(s)
			if err != nil {
				return m, nil
			}
			return m, countdownTick(token)
		case key.Matches(msg, m.keys.Select):
			if !s.TaskReady {
				m.notice = "Finish the timer first. Press t to start it."
				return m, nil
			}
			if err := e.CompleteTask(s); err == nil {
				m.ritual.saved = false
				return m, m.refreshSavedIcon()
			}
		}

	case ritual.StageAffirmation:
		switch {
		case key.Matches(msg, m.keys.Save):
			return m.saveAffirmation()
		case key.Matches(msg, m.keys.Share):
			if text, ok := s.ShareText(); ok {
				return m, m.share(share.Payload{Message: text})
			}
		case key.Matches(msg, m.keys.Select):
			if err := e.BeginMoodSelection(s); err == nil {
				m.ritual.moodCursor = noMood
			}
		}

	case ritual.StageMoodSelection:
		if i, ok := moodShortcut(msg); ok {
			m.ritual.moodCursor = i
			_ = e.SelectMood(s, catalog.Categories[i])
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.ritual.moodCursor = moveMood(m.ritual.moodCursor, -1)
			_ = e.SelectMood(s, catalog.Categories[m.ritual.moodCursor])
		case key.Matches(msg, m.keys.Down):
			m.ritual.moodCursor = moveMood(m.ritual.moodCursor, 1)
			_ = e.SelectMood(s, catalog.Categories[m.ritual.moodCursor])
		case key.Matches(msg, m.keys.Select):
			ctx, cancel := m.opCtx()
			defer cancel()
			err := e.ConfirmMood(ctx, s)
			if errors.Is(err, ritual.ErrInvalidTransition) {
				if s.PendingMood == "" {
					m.notice = "Pick a mood first."
				}
				return m, nil
			}
			m.persistNotice("save today's mood", err)
		}

	case ritual.StageFinished:
		if key.Matches(msg, m.keys.Select) {
			return m.enterPage(pageStats)
		}
	}
	return m, nil
}

func (m Model) saveAffirmation() (Model, tea.Cmd) {
	ctx, cancel := m.opCtx()
	defer cancel()
	added, err := m.deps.Ritual.SaveAffirmation(ctx, m.ritual.session)
	if err != nil {
		m.persistNotice("save the affirmation", err)
		return m, nil
	}
	m.ritual.saved = true
	if added {
		m.notice = "Saved to your affirmations."
	} else {
		m.notice = "Already in your saved affirmations."
	}
	return m, nil
}

func (m Model) viewRitual() string {
	s := m.ritual.session
	if s == nil {
		return m.styles.Muted.Render("Ritual unavailable.")
	}
	var b strings.Builder

	switch s.Stage {
	case ritual.StageTask:
		b.WriteString(m.styles.Muted.Render("Step 1 of 3 · " + s.Task.Category.Label()))
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("Today's task"))
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render(s.Task.Text))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Timer.Render("⏳ " + ritual.FormatRemaining(s.Remaining)))
		b.WriteString("  ")
		switch {
		case s.TaskReady:
			b.WriteString(m.styles.SelectedOption.Render("Done ›"))
		case s.TimerRunning:
			b.WriteString(m.spinner.View())
		default:
			b.WriteString(m.styles.Muted.Render("press t to begin"))
		}

	case ritual.StageAffirmation:
		icon := "☆"
		if m.ritual.saved {
			icon = "★"
		}
		b.WriteString(m.styles.Muted.Render("Step 2 of 3 · Your affirmation"))
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("“%s”", s.Affirmation)))
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render(icon + " s: save   p: share"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.SelectedOption.Render("How do you feel? ›"))

	case ritual.StageMoodSelection:
		b.WriteString(m.styles.Muted.Render("Step 3 of 3"))
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("How are you feeling right now?"))
		b.WriteString("\n")
		for i, c := range catalog.Categories {
			label := fmt.Sprintf("%d  %s", i+1, c.Label())
			if i == m.ritual.moodCursor {
				b.WriteString(m.styles.SelectedOption.Render(label))
			} else {
				b.WriteString(m.styles.Option.Render(label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if s.PendingMood == "" {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("choose a mood with ↑/↓ or 1-%d", len(catalog.Categories))))
		} else {
			b.WriteString(m.styles.Muted.Render("enter to confirm"))
		}

	case ritual.StageFinished:
		b.WriteString(m.styles.Success.Render("Ritual complete"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Body.Render("Today you felt " + s.Mood.Label() + "."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("enter: see your statistics · R: start a new ritual"))
	}
	return m.styles.Card.Render(b.String())
}
