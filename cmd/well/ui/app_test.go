package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wellspring/internal/catalog"
	"wellspring/internal/gallery"
	"wellspring/internal/journal"
	"wellspring/internal/kv"
	"wellspring/internal/onboarding"
	"wellspring/internal/quiz"
	"wellspring/internal/random"
	"wellspring/internal/ritual"
	"wellspring/internal/roll"
	"wellspring/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
)

type harness struct {
	store *kv.MemoryStore
	deps  Deps
	moods *journal.MoodLog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := kv.NewMemoryStore()
	profile := journal.NewProfile(store, nil)
	moods := journal.NewMoodLog(store, nil)
	vault := journal.NewAffirmationVault(store, nil)
	deps := Deps{
		Store:   store,
		Profile: profile,
		Vault:   vault,
		Ritual: ritual.NewEngine(catalog.Default(), moods, vault,
			ritual.WithRandom(random.Fixed(0)),
			ritual.WithTaskDuration(2*time.Second)),
		Roll:       roll.NewEngine(random.Fixed(0), nil),
		Stats:      stats.NewLoader(profile, moods, nil),
		Gallery:    &gallery.Saver{Dir: t.TempDir(), AllowSave: false},
		Theme:      "dark",
		SkipSplash: true,
	}
	return &harness{store: store, deps: deps, moods: moods}
}

func (h *harness) model() Model {
	return New(context.Background(), h.deps)
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, k string) (Model, tea.Cmd) {
	switch k {
	case "enter":
		return send(m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return send(m, tea.KeyMsg{Type: tea.KeyEsc})
	case "down":
		return send(m, tea.KeyMsg{Type: tea.KeyDown})
	case "up":
		return send(m, tea.KeyMsg{Type: tea.KeyUp})
	case "tab":
		return send(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestStartup_FirstRunShowsOnboarding(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	msg := m.loadStartup()()
	m, _ = send(m, msg)

	if m.page != pageOnboarding {
		t.Fatalf("Expected onboarding page, got %v", m.page)
	}

	for range onboarding.Cards() {
		m, _ = press(m, "enter")
	}

	if m.page != pageQuiz {
		t.Errorf("Expected quiz page after onboarding, got %v", m.page)
	}
	done, err := onboarding.Completed(context.Background(), h.store)
	if err != nil || !done {
		t.Errorf("Expected onboarding to be persisted, got done=%v err=%v", done, err)
	}
}

func TestStartup_ReturningUserGoesToRitual(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := onboarding.MarkCompleted(ctx, h.store); err != nil {
		t.Fatal(err)
	}
	if err := h.deps.Profile.Save(ctx, quiz.Spark); err != nil {
		t.Fatal(err)
	}

	m := h.model()
	m, _ = send(m, m.loadStartup()())
	if m.page != pageRitual {
		t.Errorf("Expected ritual page, got %v", m.page)
	}
}

func TestSplashWaitsForTimer(t *testing.T) {
	h := newHarness(t)
	h.deps.SkipSplash = false
	m := h.model()

	m, _ = send(m, startupMsg{onboarded: true, hasProfile: true})
	if m.page != pageSplash {
		t.Fatalf("Expected splash to stay up until its timer fires, got %v", m.page)
	}
	m, _ = send(m, splashDoneMsg{})
	if m.page != pageRitual {
		t.Errorf("Expected ritual page after splash, got %v", m.page)
	}
}

func TestQuiz_SavesResult(t *testing.T) {
	h := newHarness(t)
	m := h.model()
	m, _ = m.enterPage(pageQuiz)

	m, _ = press(m, "enter") // start
	for i := 0; i < quiz.NumQuestions; i++ {
		m, _ = press(m, "enter")
	}

	want := quiz.Questions()[0].Answers[0].Personality
	if m.quiz.result != want {
		t.Errorf("Expected result %q, got %q", want, m.quiz.result)
	}
	got, ok, err := h.deps.Profile.Load(context.Background())
	if err != nil || !ok || got != want {
		t.Errorf("Expected saved profile %q, got %q ok=%v err=%v", want, got, ok, err)
	}

	m, _ = press(m, "enter")
	if m.page != pageRitual {
		t.Errorf("Expected ritual after result, got %v", m.page)
	}
}

func TestRitual_FullPass(t *testing.T) {
	h := newHarness(t)
	m := h.model()
	m, _ = m.enterPage(pageRitual)
	s := m.ritual.session

	m, _ = press(m, "enter")
	if s.Stage != ritual.StageTask {
		t.Fatalf("Expected task to stay until the timer finishes, got %v", s.Stage)
	}
	if m.notice == "" {
		t.Errorf("Expected a notice explaining the timer")
	}

	m, cmd := press(m, "t")
	if cmd == nil {
		t.Fatalf("Expected countdown tick command")
	}
	token, ok := s.TimerToken()
	if !ok {
		t.Fatalf("Expected live timer token")
	}
	m, cmd = send(m, countdownTickMsg{token: token})
	if cmd == nil || s.TaskReady {
		t.Fatalf("Expected countdown to keep running after one second")
	}
	m, cmd = send(m, countdownTickMsg{token: token})
	if cmd != nil || !s.TaskReady {
		t.Fatalf("Expected countdown to finish after two seconds")
	}

	m, _ = press(m, "enter")
	if s.Stage != ritual.StageAffirmation {
		t.Fatalf("Expected affirmation stage, got %v", s.Stage)
	}

	m, _ = press(m, "s")
	if !m.ritual.saved {
		t.Errorf("Expected saved icon after saving")
	}
	saved, _ := h.deps.Vault.Contains(context.Background(), s.Affirmation)
	if !saved {
		t.Errorf("Expected affirmation in the vault")
	}

	m, _ = press(m, "enter")
	if s.Stage != ritual.StageMoodSelection {
		t.Fatalf("Expected mood selection, got %v", s.Stage)
	}
	if s.PendingMood != "" || m.ritual.moodCursor != noMood {
		t.Fatalf("Expected no mood picked on entry, got %q", s.PendingMood)
	}
	m, _ = press(m, "down")
	m, _ = press(m, "down")
	m, _ = press(m, "enter")
	if s.Stage != ritual.StageFinished || s.Mood != catalog.Driven {
		t.Fatalf("Expected finished with driven mood, got %v %q", s.Stage, s.Mood)
	}

	records, _, err := h.moods.List(context.Background())
	if err != nil || len(records) != 1 || records[0].Mood != catalog.Driven {
		t.Errorf("Expected one driven mood record, got %+v err=%v", records, err)
	}

	m, cmd = press(m, "enter")
	if m.page != pageStats || cmd == nil {
		t.Errorf("Expected statistics to load after finishing, got page %v", m.page)
	}

	m, _ = m.enterPage(pageRitual)
	_, _ = press(m, "R")
	if s.Stage != ritual.StageTask || s.Affirmation != "" {
		t.Errorf("Expected a fresh ritual after reset, got %v", s.Stage)
	}
}

// toMoodSelection walks a fresh ritual up to the mood question.
func toMoodSelection(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = m.enterPage(pageRitual)
	s := m.ritual.session
	m, _ = press(m, "t")
	token, _ := s.TimerToken()
	m, _ = send(m, countdownTickMsg{token: token})
	m, _ = send(m, countdownTickMsg{token: token})
	m, _ = press(m, "enter")
	m, _ = press(m, "enter")
	if s.Stage != ritual.StageMoodSelection {
		t.Fatalf("Expected mood selection, got %v", s.Stage)
	}
	return m
}

func TestRitual_ConfirmNeedsMoodChoice(t *testing.T) {
	h := newHarness(t)
	m := toMoodSelection(t, h.model())
	s := m.ritual.session

	if !strings.Contains(m.View(), "choose a mood") {
		t.Errorf("Expected a prompt to choose a mood")
	}

	m, _ = press(m, "enter")
	if s.Stage != ritual.StageMoodSelection {
		t.Errorf("Expected to stay in mood selection, got %v", s.Stage)
	}
	if s.PendingMood != "" {
		t.Errorf("Expected no pending mood, got %q", s.PendingMood)
	}
	if m.notice == "" {
		t.Errorf("Expected a notice asking for a mood")
	}
	records, _, err := h.moods.List(context.Background())
	if err != nil || len(records) != 0 {
		t.Errorf("Expected no mood record, got %+v err=%v", records, err)
	}
}

func TestRitual_MoodKeys(t *testing.T) {
	h := newHarness(t)
	m := toMoodSelection(t, h.model())
	s := m.ritual.session

	last := catalog.Categories[len(catalog.Categories)-1]
	m, _ = press(m, "up")
	if s.PendingMood != last {
		t.Errorf("Expected up from nothing to pick the last mood, got %q", s.PendingMood)
	}

	m, _ = press(m, "1")
	if s.PendingMood != catalog.Categories[0] || m.ritual.moodCursor != 0 {
		t.Errorf("Expected 1 to pick the first mood, got %q", s.PendingMood)
	}
	m, _ = press(m, "9")
	if s.PendingMood != catalog.Categories[0] {
		t.Errorf("Expected an out-of-range digit to be ignored, got %q", s.PendingMood)
	}

	m, _ = press(m, "enter")
	if s.Stage != ritual.StageFinished || s.Mood != catalog.Categories[0] {
		t.Errorf("Expected finished with the first mood, got %v %q", s.Stage, s.Mood)
	}

	m, _ = press(m, "R")
	if m.ritual.moodCursor != noMood {
		t.Errorf("Expected reset to clear the mood cursor, got %d", m.ritual.moodCursor)
	}
}

func TestRitual_StaleTickIgnored(t *testing.T) {
	h := newHarness(t)
	m := h.model()
	m, _ = m.enterPage(pageRitual)
	s := m.ritual.session

	m, _ = press(m, "t")
	token, _ := s.TimerToken()
	m, _ = press(m, "R")

	m, cmd := send(m, countdownTickMsg{token: token})
	if cmd != nil {
		t.Errorf("Expected no reschedule for a stale tick")
	}
	if s.Remaining != s.Duration {
		t.Errorf("Expected untouched countdown, got %v", s.Remaining)
	}
	_ = m
}

func TestRoll_SettlesChainInOrder(t *testing.T) {
	h := newHarness(t)
	h.deps.Offsets = [roll.NumReels]time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}
	m := h.model()
	m, _ = m.enterPage(pageRoll)

	m, _ = press(m, "enter")
	token := m.roll.spin.Token

	m, cmd := send(m, settleMsg{token: token, reel: 0})
	for reel := 1; reel < roll.NumReels; reel++ {
		if cmd == nil {
			t.Fatalf("Expected reel %d to be scheduled", reel)
		}
		msg, ok := cmd().(settleMsg)
		if !ok || msg.reel != reel || msg.token != token {
			t.Fatalf("Expected settle of reel %d, got %+v", reel, msg)
		}
		m, cmd = send(m, msg)
	}
	if cmd != nil {
		t.Errorf("Expected nothing scheduled after the last reel")
	}
	if st := h.deps.Roll.State(); st.Phase != roll.PhaseResolved {
		t.Errorf("Expected resolved spin, got %v", st.Phase)
	}
}

func TestRoll_NextSettleDelayClamped(t *testing.T) {
	h := newHarness(t)
	h.deps.Offsets = [roll.NumReels]time.Duration{2 * time.Second, time.Second, 3 * time.Second}
	m := h.model()

	if d := m.nextSettleDelay(0); d != 0 {
		t.Errorf("Expected a negative gap to clamp to zero, got %v", d)
	}
	if d := m.nextSettleDelay(1); d != 2*time.Second {
		t.Errorf("Expected 2s gap, got %v", d)
	}
}

func TestRoll_WinShowsPrize(t *testing.T) {
	h := newHarness(t)
	m := h.model()
	m, _ = m.enterPage(pageRoll)

	m, cmd := press(m, "enter")
	if cmd == nil {
		t.Fatalf("Expected scheduled settles")
	}
	token := m.roll.spin.Token
	for reel := 0; reel < roll.NumReels; reel++ {
		m, _ = send(m, settleMsg{token: token, reel: reel})
	}

	st := h.deps.Roll.State()
	if st.Phase != roll.PhaseResolved || st.Prize == nil || st.Prize.Kind != roll.PrizeStory {
		t.Fatalf("Expected story prize, got %+v", st)
	}
	if !strings.Contains(m.View(), "You won!") {
		t.Errorf("Expected prize card in view")
	}

	m, _ = press(m, "esc")
	if h.deps.Roll.State().PrizeVisible {
		t.Errorf("Expected prize to be dismissed")
	}
}

func TestRoll_ResetDropsPendingSettles(t *testing.T) {
	h := newHarness(t)
	m := h.model()
	m, _ = m.enterPage(pageRoll)

	m, _ = press(m, "enter")
	token := m.roll.spin.Token
	m, _ = press(m, "R")
	m, _ = send(m, settleMsg{token: token, reel: 0})

	st := h.deps.Roll.State()
	if st.Phase != roll.PhaseIdle || st.Settled != 0 || st.Attempts != 0 {
		t.Errorf("Expected stale settle to be ignored after reset, got %+v", st)
	}
}

func TestGalleryPermissionShowsAlert(t *testing.T) {
	h := newHarness(t)
	m := h.model()
	m, _ = m.enterPage(pageRoll)

	msg := m.saveAbstract(0)()
	m, _ = send(m, msg)
	if m.alert == "" {
		t.Fatalf("Expected a blocking alert for the permission error")
	}

	m, _ = press(m, "tab")
	if m.page != pageRoll {
		t.Errorf("Expected alert to block navigation")
	}
	m, _ = press(m, "enter")
	if m.alert != "" {
		t.Errorf("Expected alert to be dismissed")
	}
}

func TestStats_ResetNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.moods.Record(ctx, time.Now(), catalog.Flow); err != nil {
		t.Fatal(err)
	}

	m := h.model()
	m, cmd := m.enterPage(pageStats)
	m, _ = send(m, cmd())
	if m.stats.dashboard == nil || m.stats.dashboard.Summary.TotalRituals != 1 {
		t.Fatalf("Expected one ritual on the dashboard")
	}
	if !strings.Contains(m.View(), "100%") {
		t.Errorf("Expected flow at 100%% in view")
	}

	m, _ = press(m, "R")
	if !m.stats.confirmReset {
		t.Fatalf("Expected reset confirmation")
	}
	m, _ = press(m, "n")
	if m.stats.confirmReset {
		t.Errorf("Expected confirmation to close")
	}
	records, _, _ := h.moods.List(ctx)
	if len(records) != 1 {
		t.Errorf("Expected records kept after cancelling, got %d", len(records))
	}

	m, _ = press(m, "R")
	m, cmd = press(m, "y")
	if cmd == nil {
		t.Fatalf("Expected dashboard reload after reset")
	}
	m, _ = send(m, cmd())
	if m.stats.dashboard.Summary.TotalRituals != 0 {
		t.Errorf("Expected empty dashboard after reset")
	}
}

func TestSaved_DeleteSelected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	for _, text := range []string{"first", "second"} {
		if _, err := h.deps.Vault.Save(ctx, text); err != nil {
			t.Fatal(err)
		}
	}

	m := h.model()
	m, cmd := m.enterPage(pageSaved)
	m, _ = send(m, cmd())
	if len(m.saved.list) != 2 {
		t.Fatalf("Expected two saved entries, got %d", len(m.saved.list))
	}

	m, _ = press(m, "down")
	m, _ = press(m, "d")
	m, cmd = press(m, "y")
	m, _ = send(m, batchFirst(cmd))

	if len(m.saved.list) != 1 || m.saved.list[0].Text != "first" {
		t.Errorf("Expected only %q left, got %+v", "first", m.saved.list)
	}
}

func TestPersistNotice(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	m.persistNotice("save", nil)
	if m.notice != "" {
		t.Errorf("Expected no notice without an error")
	}
	m.persistNotice("save the thing", errors.New("disk full"))
	if !strings.Contains(m.notice, "save the thing") {
		t.Errorf("Expected notice to name the operation, got %q", m.notice)
	}
}

// batchFirst runs the first command of a tea.Batch.
func batchFirst(cmd tea.Cmd) tea.Msg {
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				return c()
			}
		}
		return nil
	}
	return msg
}
