package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultResizeDuration is the quiet period before a resize is applied.
const DefaultResizeDuration = 150 * time.Millisecond

// resizeSettledMsg carries the size once resizing has stopped.
type resizeSettledMsg struct {
	seq           int
	width, height int
}

// resizeDebouncer coalesces bursts of WindowSizeMsg. Only the command from the
// latest Trigger produces a message that Settled accepts.
type resizeDebouncer struct {
	seq      int
	duration time.Duration
}

func newResizeDebouncer(d time.Duration) resizeDebouncer {
	return resizeDebouncer{duration: d}
}

// Trigger records a new size and returns the delayed settle command.
func (d *resizeDebouncer) Trigger(width, height int) tea.Cmd {
	d.seq++
	seq := d.seq
	return tea.Tick(d.duration, func(time.Time) tea.Msg {
		return resizeSettledMsg{seq: seq, width: width, height: height}
	})
}

// Settled reports whether msg belongs to the latest Trigger.
func (d *resizeDebouncer) Settled(msg resizeSettledMsg) bool {
	return msg.seq == d.seq
}
