package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"wellspring/internal/config"
	"wellspring/internal/gallery"
	"wellspring/internal/journal"
	"wellspring/internal/kv"
	"wellspring/internal/onboarding"
	"wellspring/internal/ritual"
	"wellspring/internal/roll"
	"wellspring/internal/share"
	"wellspring/internal/stats"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// splashDuration is how long the splash stays up.
const splashDuration = 1500 * time.Millisecond

// opTimeout bounds a single persistence call made from the event loop.
const opTimeout = 3 * time.Second

type page int

const (
	pageSplash page = iota
	pageOnboarding
	pageQuiz
	pageRitual
	pageStats
	pageSaved
	pageRoll
)

var tabs = []page{pageQuiz, pageRitual, pageStats, pageSaved, pageRoll}

func (p page) title() string {
	switch p {
	case pageQuiz:
		return "Quiz"
	case pageRitual:
		return "Ritual"
	case pageStats:
		return "Stats"
	case pageSaved:
		return "Saved"
	case pageRoll:
		return "Daily Roll"
	}
	return ""
}

// Deps are the components the interface drives.
type Deps struct {
	Store   kv.Store
	Profile *journal.Profile
	Vault   *journal.AffirmationVault
	Ritual  *ritual.Engine
	Roll    *roll.Engine
	Stats   *stats.Loader
	Gallery *gallery.Saver
	Sharer  share.Sharer
	Log     *zap.Logger

	Theme      config.Theme
	SkipSplash bool
	Offsets    [roll.NumReels]time.Duration
	Flicker    time.Duration
}

type (
	splashDoneMsg struct{}
	startupMsg    struct {
		onboarded  bool
		hasProfile bool
		err        error
	}
	noticeMsg struct{ text string }
)

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	deps Deps
	log  *zap.Logger

	styles  Styles
	keys    keyMap
	help    help.Model
	md      markdown
	spinner spinner.Model
	resize  resizeDebouncer

	width, height int
	page          page

	splashDone bool
	startup    *startupMsg

	notice string // shown in the footer until the next key press
	alert  string // blocks input until dismissed

	onboard *onboarding.Flow
	quiz    quizPage
	ritual  ritualPage
	stats   statsPage
	saved   savedPage
	roll    rollPage
}

// New builds the root model.
func New(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Offsets == ([roll.NumReels]time.Duration{}) {
		deps.Offsets = roll.DefaultOffsets
	}
	if deps.Flicker <= 0 {
		deps.Flicker = 70 * time.Millisecond
	}

	styles := NewStyles(ThemeFor(deps.Theme))
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:     ctx,
		deps:    deps,
		log:     deps.Log,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		md:      newMarkdown(styles.Theme.IsDark, 72),
		spinner: sp,
		resize:  newResizeDebouncer(DefaultResizeDuration),
		width:   80,
		height:  24,
		page:    pageSplash,
		onboard: onboarding.NewFlow(),
		quiz:    newQuizPage(),
		ritual:  newRitualPage(deps.Ritual),
		stats:   newStatsPage(),
		saved:   savedPage{},
		roll:    newRollPage(),
	}
	if deps.SkipSplash {
		m.splashDone = true
	}
	return m
}

// Run starts the full-screen interface and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadStartup()}
	if !m.splashDone {
		cmds = append(cmds, tea.Tick(splashDuration, func(time.Time) tea.Msg { return splashDoneMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m Model) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, opTimeout)
}

func (m Model) loadStartup() tea.Cmd {
	store, profile := m.deps.Store, m.deps.Profile
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, opTimeout)
		defer cancel()
		done, err := onboarding.Completed(ctx, store)
		if err != nil {
			return startupMsg{err: err}
		}
		_, has, err := profile.Load(ctx)
		return startupMsg{onboarded: done, hasProfile: has, err: err}
	}
}

// leaveSplash picks the first page once the splash and startup data are both in.
func (m Model) leaveSplash() (Model, tea.Cmd) {
	if m.page != pageSplash || !m.splashDone || m.startup == nil {
		return m, nil
	}
	if m.startup.err != nil {
		m.notice = "Could not read saved data: " + m.startup.err.Error()
	}
	switch {
	case !m.startup.onboarded:
		m.page = pageOnboarding
	case !m.startup.hasProfile:
		m.page = pageQuiz
	default:
		m.page = pageRitual
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, m.resize.Trigger(msg.Width, msg.Height)

	case resizeSettledMsg:
		if m.resize.Settled(msg) {
			m.md = newMarkdown(m.styles.Theme.IsDark, min(msg.width-8, 100))
			m.stats.setWidth(msg.width)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case splashDoneMsg:
		m.splashDone = true
		return m.leaveSplash()

	case startupMsg:
		m.startup = &msg
		return m.leaveSplash()

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case countdownTickMsg:
		return m.onCountdownTick(msg)

	case savedIconMsg:
		return m.onSavedIcon(msg)

	case dashboardMsg:
		return m.onDashboard(msg)

	case savedListMsg:
		return m.onSavedList(msg)

	case flickerMsg:
		return m.onFlicker(msg)

	case settleMsg:
		return m.onSettle(msg)

	case gallerySavedMsg:
		return m.onGallerySaved(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.alert != "" {
		if key.Matches(msg, m.keys.Back, m.keys.Select) {
			m.alert = ""
		}
		return m, nil
	}
	m.notice = ""

	if m.confirming() {
		return m.onConfirmKey(msg)
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.page {
	case pageSplash:
		m.splashDone = true
		return m.leaveSplash()
	case pageOnboarding:
		return m.updateOnboarding(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.switchTab(1)
	case key.Matches(msg, m.keys.Prev):
		return m.switchTab(-1)
	}

	switch m.page {
	case pageQuiz:
		return m.updateQuiz(msg)
	case pageRitual:
		return m.updateRitual(msg)
	case pageStats:
		return m.updateStats(msg)
	case pageSaved:
		return m.updateSaved(msg)
	case pageRoll:
		return m.updateRoll(msg)
	}
	return m, nil
}

func (m Model) confirming() bool {
	return m.stats.confirmReset || m.saved.confirm != confirmNone
}

func (m Model) onConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	yes := key.Matches(msg, m.keys.Confirm)
	if !yes && !key.Matches(msg, m.keys.Cancel) {
		return m, nil
	}
	switch {
	case m.stats.confirmReset:
		m.stats.confirmReset = false
		if yes {
			return m.resetStats()
		}
	case m.saved.confirm != confirmNone:
		action := m.saved.confirm
		m.saved.confirm = confirmNone
		if yes {
			return m.applySavedConfirm(action)
		}
	}
	return m, nil
}

func (m Model) switchTab(delta int) (Model, tea.Cmd) {
	idx := 0
	for i, p := range tabs {
		if p == m.page {
			idx = i
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	return m.enterPage(tabs[idx])
}

// enterPage switches pages and kicks off whatever the page loads on focus.
func (m Model) enterPage(p page) (Model, tea.Cmd) {
	m.page = p
	switch p {
	case pageStats:
		m.stats.loading = true
		return m, m.loadDashboard()
	case pageSaved:
		m.saved.loading = true
		return m, m.loadSaved()
	case pageRitual:
		return m, m.refreshSavedIcon()
	}
	return m, nil
}

// share sends p through the configured sharer off the event loop.
func (m Model) share(p share.Payload) tea.Cmd {
	sharer, log, parent := m.deps.Sharer, m.log, m.ctx
	if sharer == nil {
		return func() tea.Msg { return noticeMsg{text: "Sharing is not available."} }
	}
	return func() tea.Msg {
		out, err := share.Send(parent, sharer, p, log)
		switch {
		case err != nil:
			return noticeMsg{text: "Share failed: " + err.Error()}
		case out == share.Completed:
			return noticeMsg{text: "Copied to share."}
		}
		return nil
	}
}

// persistNotice turns a persistence failure into a non-blocking notice.
func (m *Model) persistNotice(what string, err error) {
	if err == nil {
		return
	}
	m.log.Warn("persistence failed", zap.String("op", what), zap.Error(err))
	m.notice = "Couldn't " + what + ". Your progress on screen is kept."
}

func (m Model) View() string {
	var b strings.Builder

	switch m.page {
	case pageSplash:
		return m.viewSplash()
	case pageOnboarding:
		b.WriteString(m.viewOnboarding())
	default:
		b.WriteString(m.viewTabs())
		b.WriteString("\n")
		var body string
		switch m.page {
		case pageQuiz:
			body = m.viewQuiz()
		case pageRitual:
			body = m.viewRitual()
		case pageStats:
			body = m.viewStats()
		case pageSaved:
			body = m.viewSaved()
		case pageRoll:
			body = m.viewRoll()
		}
		b.WriteString(m.styles.Content.Render(body))
	}

	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Alert.Render(m.alert + "\n\n" + m.styles.Muted.Render("enter to dismiss")))
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.styles.Warning.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render(m.help.View(m.pageHelp())))
	return m.styles.App.Render(b.String())
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, m.styles.Header.Render("wellspring"))
	for _, p := range tabs {
		if p == m.page {
			parts = append(parts, m.styles.ActiveTab.Render(p.title()))
		} else {
			parts = append(parts, m.styles.Tab.Render(p.title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) pageHelp() help.KeyMap {
	k := m.keys
	if m.confirming() {
		return bindings{short: []key.Binding{k.Confirm, k.Cancel}}
	}
	switch m.page {
	case pageOnboarding:
		return bindings{short: []key.Binding{k.Select, k.Quit}}
	case pageQuiz:
		return helpFor(k, k.Up, k.Down, k.Select, k.Reset)
	case pageRitual:
		return helpFor(k, k.Timer, k.Select, k.Save, k.Share, k.Reset)
	case pageStats:
		return helpFor(k, k.Share, k.Reset)
	case pageSaved:
		return helpFor(k, k.Up, k.Down, k.Share, k.Delete, k.Reset)
	case pageRoll:
		return helpFor(k, k.Roll, k.Equip, k.Share, k.Back, k.Reset)
	}
	return bindings{short: []key.Binding{k.Quit}}
}
