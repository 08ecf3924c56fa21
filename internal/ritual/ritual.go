// Package ritual drives the daily ritual: a timed task, then an affirmation,
// then a mood check-in.
package ritual

import (
	"errors"
	"fmt"
	"time"

	"wellspring/internal/catalog"
	"wellspring/internal/choreo"
)

// Stage is the active step of a ritual session.
type Stage int

const (
	StageTask Stage = iota
	StageAffirmation
	StageMoodSelection
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageTask:
		return "task1"
	case StageAffirmation:
		return "task2_affirmation"
	case StageMoodSelection:
		return "task3_mood_selection"
	case StageFinished:
		return "task3_finished_ritual"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ErrInvalidTransition is returned when an operation does not apply to the
// session's current stage. The session is left unchanged.
var ErrInvalidTransition = errors.New("invalid ritual transition")

// TaskRecord is the task drawn for a session.
type TaskRecord struct {
	Text     string
	Category catalog.Category
}

// Session is one pass through the ritual. It is owned by a single caller.
type Session struct {
	ID          string
	Stage       Stage
	Task        TaskRecord
	Affirmation string           // set from StageAffirmation on
	PendingMood catalog.Category // selection awaiting confirmation
	Mood        catalog.Category // confirmed mood, set in StageFinished
	StartedAt   time.Time

	// Countdown for the task stage.
	Duration     time.Duration
	Remaining    time.Duration
	TimerRunning bool
	TaskReady    bool // countdown reached zero

	timer choreo.Generation
}

// ShareText is the message shared for the session's affirmation.
func (s *Session) ShareText() (string, bool) {
	if s.Affirmation == "" {
		return "", false
	}
	return AffirmationShareText(s.Affirmation), true
}

// AffirmationShareText formats the share message for an affirmation.
func AffirmationShareText(text string) string {
	return "My daily affirmation: " + text
}

// FormatRemaining renders a countdown as MM:SS.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func invalid(op string, s *Session) error {
	return fmt.Errorf("%w: %s in stage %s", ErrInvalidTransition, op, s.Stage)
}
