package ritual

import (
	"context"
	"fmt"
	"time"

	"wellspring/internal/catalog"
	"wellspring/internal/choreo"
	"wellspring/internal/journal"
	"wellspring/internal/random"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTaskDuration is the task countdown length.
const DefaultTaskDuration = 300 * time.Second

// Content supplies the catalog in effect; *catalog.Catalog and
// *catalog.Watcher both satisfy it.
type Content interface {
	Current() *catalog.Catalog
}

// Engine applies ritual transitions to sessions.
type Engine struct {
	content  Content
	rand     random.Source
	now      func() time.Time
	moods    *journal.MoodLog
	vault    *journal.AffirmationVault
	log      *zap.Logger
	duration time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithRandom replaces the default random source.
func WithRandom(src random.Source) Option { return func(e *Engine) { e.rand = src } }

// WithTaskDuration sets the countdown length.
func WithTaskDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.duration = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine builds an engine over the content and journal collections.
func NewEngine(content Content, moods *journal.MoodLog, vault *journal.AffirmationVault, opts ...Option) *Engine {
	e := &Engine{
		content:  content,
		rand:     random.Default(),
		now:      time.Now,
		moods:    moods,
		vault:    vault,
		log:      zap.NewNop(),
		duration: DefaultTaskDuration,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSession starts a ritual at the task stage with a freshly drawn task and
// a stopped countdown.
func (e *Engine) NewSession() *Session {
	s := &Session{ID: uuid.NewString()}
	e.restart(s)
	e.log.Debug("ritual session started",
		zap.String("session", s.ID),
		zap.String("category", string(s.Task.Category)))
	return s
}

func (e *Engine) restart(s *Session) {
	s.timer.Cancel()
	cat, text := e.content.Current().DrawTask(e.rand)
	s.Stage = StageTask
	s.Task = TaskRecord{Text: text, Category: cat}
	s.Affirmation = ""
	s.PendingMood = ""
	s.Mood = ""
	s.StartedAt = e.now()
	s.Duration = e.duration
	s.Remaining = e.duration
	s.TimerRunning = false
	s.TaskReady = false
}

// StartTimer starts (or restarts) the task countdown and returns the token
// that Tick must present.
func (e *Engine) StartTimer(s *Session) (choreo.Token, error) {
	if s.Stage != StageTask {
		return 0, invalid("start timer", s)
	}
	if s.Remaining <= 0 {
		s.Remaining = s.Duration
	}
	s.TimerRunning = true
	s.TaskReady = false
	return s.timer.Next(), nil
}

// Tick advances the countdown by elapsed. It reports false, changing nothing,
// when token is stale: the timer was restarted, the stage moved on, or the
// session was reset.
func (e *Engine) Tick(s *Session, token choreo.Token, elapsed time.Duration) bool {
	if !s.timer.Valid(token) || s.Stage != StageTask || !s.TimerRunning {
		return false
	}
	s.Remaining -= elapsed
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.TimerRunning = false
		s.TaskReady = true
		s.timer.Cancel()
		e.log.Debug("task countdown finished", zap.String("session", s.ID))
	}
	return true
}

// TimerToken returns the live countdown token, if any.
func (s *Session) TimerToken() (choreo.Token, bool) {
	return s.timer.Current()
}

// CompleteTask moves from the task to the affirmation stage, drawing an
// affirmation from the task's category.
func (e *Engine) CompleteTask(s *Session) error {
	if s.Stage != StageTask {
		return invalid("complete task", s)
	}
	s.timer.Cancel()
	s.TimerRunning = false
	s.Affirmation = e.content.Current().DrawAffirmation(e.rand, s.Task.Category)
	s.Stage = StageAffirmation
	return nil
}

// BeginMoodSelection moves from the affirmation to the mood picker.
func (e *Engine) BeginMoodSelection(s *Session) error {
	if s.Stage != StageAffirmation {
		return invalid("begin mood selection", s)
	}
	s.PendingMood = ""
	s.Stage = StageMoodSelection
	return nil
}

// SelectMood sets the pending mood. It may be changed until confirmed.
func (e *Engine) SelectMood(s *Session, mood catalog.Category) error {
	if s.Stage != StageMoodSelection {
		return invalid("select mood", s)
	}
	if !mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidTransition, mood)
	}
	s.PendingMood = mood
	return nil
}

// ConfirmMood records the pending mood for today and finishes the ritual.
// The stage advances even when the write fails; the error is returned so the
// caller can show a notice.
func (e *Engine) ConfirmMood(ctx context.Context, s *Session) error {
	if s.Stage != StageMoodSelection || s.PendingMood == "" {
		return invalid("confirm mood", s)
	}
	mood := s.PendingMood
	s.Mood = mood
	s.PendingMood = ""
	s.Stage = StageFinished

	if _, err := e.moods.Record(ctx, e.now(), mood); err != nil {
		e.log.Warn("failed to persist mood", zap.String("session", s.ID), zap.Error(err))
		return err
	}
	e.log.Info("ritual finished", zap.String("session", s.ID), zap.String("mood", string(mood)))
	return nil
}

// Reset returns the session to the task stage with a new task.
func (e *Engine) Reset(s *Session) {
	e.restart(s)
}

// SaveAffirmation saves the session's affirmation. Saving twice is a no-op
// reporting added=false.
func (e *Engine) SaveAffirmation(ctx context.Context, s *Session) (bool, error) {
	if s.Affirmation == "" {
		return false, invalid("save affirmation", s)
	}
	added, err := e.vault.Save(ctx, s.Affirmation)
	if err != nil {
		e.log.Warn("failed to save affirmation", zap.String("session", s.ID), zap.Error(err))
		return false, err
	}
	return added, nil
}

// IsAffirmationSaved reports whether the session's affirmation is already saved.
func (e *Engine) IsAffirmationSaved(ctx context.Context, s *Session) (bool, error) {
	if s.Affirmation == "" {
		return false, nil
	}
	return e.vault.Contains(ctx, s.Affirmation)
}
