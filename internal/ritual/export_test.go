package ritual

import "time"

// sessionView is the comparable part of a Session.
type sessionView struct {
	Stage        Stage
	Task         TaskRecord
	Affirmation  string
	PendingMood  string
	Mood         string
	Remaining    time.Duration
	TimerRunning bool
	TaskReady    bool
}

func (s *Session) snapshot() *sessionView {
	return &sessionView{
		Stage:        s.Stage,
		Task:         s.Task,
		Affirmation:  s.Affirmation,
		PendingMood:  string(s.PendingMood),
		Mood:         string(s.Mood),
		Remaining:    s.Remaining,
		TimerRunning: s.TimerRunning,
		TaskReady:    s.TaskReady,
	}
}
