package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellspring/internal/choreo"
	"wellspring/internal/gallery"
	"wellspring/internal/roll"
	"wellspring/internal/share"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type (
	flickerMsg struct{ token choreo.Token }
	settleMsg  struct {
		token choreo.Token
		reel  int
	}
	gallerySavedMsg struct {
		path string
		err  error
	}
)

type rollPage struct {
	spin    roll.Spin
	flicker [roll.NumReels]roll.Symbol
	saved   string // path of the downloaded abstract image
}

func newRollPage() rollPage {
	return rollPage{flicker: [roll.NumReels]roll.Symbol{roll.Lotus, roll.Flame, roll.Wave}}
}

// startRoll begins a spin and schedules its flicker frames and the first
// reel settle. Each later reel is scheduled when the previous one lands.
func (m Model) startRoll() (Model, tea.Cmd) {
	spin, err := m.deps.Roll.Start()
	if err != nil {
		return m, nil
	}
	m.roll.spin = spin
	m.roll.saved = ""

	return m, tea.Batch(m.flickerTick(spin.Token), settleTick(spin.Token, 0, m.deps.Offsets[0]))
}

func settleTick(token choreo.Token, reel int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return settleMsg{token: token, reel: reel} })
}

// nextSettleDelay is the gap between reel's settle and the one after it.
func (m Model) nextSettleDelay(reel int) time.Duration {
	d := m.deps.Offsets[reel+1] - m.deps.Offsets[reel]
	if d < 0 {
		return 0
	}
	return d
}

func (m Model) flickerTick(token choreo.Token) tea.Cmd {
	return tea.Tick(m.deps.Flicker, func(time.Time) tea.Msg { return flickerMsg{token: token} })
}

func (m Model) onFlicker(msg flickerMsg) (Model, tea.Cmd) {
	st := m.deps.Roll.State()
	if msg.token != m.roll.spin.Token || st.Phase != roll.PhaseRolling {
		return m, nil
	}
	for i := st.Settled; i < roll.NumReels; i++ {
		m.roll.flicker[i] = m.deps.Roll.Flicker()
	}
	return m, m.flickerTick(msg.token)
}

func (m Model) onSettle(msg settleMsg) (Model, tea.Cmd) {
	st, err := m.deps.Roll.Settle(msg.token, msg.reel)
	switch {
	case errors.Is(err, roll.ErrStaleSpin):
		return m, nil
	case err != nil:
		m.log.Warn("reel settle rejected", zap.Int("reel", msg.reel), zap.Error(err))
		return m, nil
	}
	m.roll.flicker[st.Reel] = st.Symbol
	if st.Final {
		return m, nil
	}
	return m, settleTick(msg.token, st.Reel+1, m.nextSettleDelay(st.Reel))
}

func (m Model) updateRoll(msg tea.KeyMsg) (Model, tea.Cmd) {
	e := m.deps.Roll
	if e == nil {
		return m, nil
	}
	st := e.State()

	switch {
	case key.Matches(msg, m.keys.Reset):
		e.Reset()
		m.roll = newRollPage()
		return m, nil

	case st.PrizeVisible && key.Matches(msg, m.keys.Back):
		e.DismissPrize()

	case st.PrizeVisible && key.Matches(msg, m.keys.Equip):
		switch st.Prize.Kind {
		case roll.PrizeWallpaper:
			if err := e.ApplyWallpaper(); err == nil {
				m.notice = "Wallpaper applied."
			}
		case roll.PrizeAbstract:
			return m, m.saveAbstract(st.Prize.AbstractIndex)
		}

	case st.PrizeVisible && key.Matches(msg, m.keys.Share):
		p := share.Payload{Title: st.Prize.Title()}
		switch st.Prize.Kind {
		case roll.PrizeStory:
			p = share.Payload{Title: roll.StoryShareTitle, Message: roll.StoryShareMessage}
		case roll.PrizeAbstract:
			p.Message = "I won an abstract image in my daily roll."
			p.ImagePath = m.roll.saved
		default:
			p.Message = "I won a wallpaper in my daily roll."
		}
		return m, m.share(p)

	case !st.PrizeVisible && key.Matches(msg, m.keys.Roll):
		return m.startRoll()
	}
	return m, nil
}

// saveAbstract renders and writes the won image off the event loop.
func (m Model) saveAbstract(index int) tea.Cmd {
	saver, parent := m.deps.Gallery, m.ctx
	if saver == nil {
		return func() tea.Msg { return gallerySavedMsg{err: errors.New("gallery is not configured")} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, 30*time.Second)
		defer cancel()
		path, err := saver.Save(ctx, index)
		return gallerySavedMsg{path: path, err: err}
	}
}

func (m Model) onGallerySaved(msg gallerySavedMsg) (Model, tea.Cmd) {
	var perm *gallery.PermissionError
	switch {
	case errors.As(msg.err, &perm):
		m.alert = "Permission needed\n\n" + perm.Remedy
	case msg.err != nil:
		m.notice = "Couldn't save the image: " + msg.err.Error()
	default:
		m.roll.saved = msg.path
		m.notice = "Saved to " + msg.path
	}
	return m, nil
}

func (m Model) viewRoll() string {
	st := m.deps.Roll.State()
	var b strings.Builder

	title := "Daily Roll"
	if st.WallpaperApplied {
		title = "✦ Daily Roll ✦"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	reels := make([]string, roll.NumReels)
	for i := range reels {
		sym := st.Reels[i]
		if st.Phase == roll.PhaseRolling && i >= st.Settled {
			sym = m.roll.flicker[i]
		}
		reels[i] = m.styles.Reel.Render(sym.Glyph())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, reels...))
	b.WriteString("\n\n")

	switch {
	case st.Phase == roll.PhaseRolling:
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("rolling…"))
	case st.PrizeVisible && st.Prize != nil:
		b.WriteString(m.viewPrize(*st.Prize))
	case st.TryAgain:
		b.WriteString(m.styles.Warning.Render("So close! Try again."))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("enter to roll"))
	default:
		b.WriteString(m.styles.Muted.Render("Match three symbols to win. Press enter to roll."))
	}
	return m.styles.Card.Render(b.String())
}

func (m Model) viewPrize(p roll.Prize) string {
	var b strings.Builder
	b.WriteString(m.styles.Success.Render("You won! " + p.Title()))
	b.WriteString("\n")
	switch p.Kind {
	case roll.PrizeStory:
		b.WriteString(m.md.Render(fmt.Sprintf("## %s\n\n%s", roll.StoryTitle, roll.StoryText)))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("p: share · esc: close"))
	case roll.PrizeWallpaper:
		b.WriteString(m.styles.Body.Render("A new background for your roll."))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("e: apply · esc: close"))
	case roll.PrizeAbstract:
		b.WriteString(m.styles.Body.Render(gallery.Names[p.AbstractIndex%gallery.Count]))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("e: download · p: share · esc: close"))
	}
	return b.String()
}
