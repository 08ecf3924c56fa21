// Package choreo sequences timed UI events. A Generation hands out tokens that
// become stale on Cancel, so a superseded spin or countdown cannot mutate the
// state that replaced it. Timeline delivers scheduled events in offset order.
package choreo

import "sync/atomic"

// Token identifies one scheduled sequence (a spin, a countdown run).
type Token uint64

// Generation issues tokens. Only the most recent token is valid; Cancel
// invalidates it without issuing a new one. The zero value is ready to use.
type Generation struct {
	current atomic.Uint64
	live    atomic.Bool
}

// Next invalidates any outstanding token and returns a fresh one.
func (g *Generation) Next() Token {
	t := Token(g.current.Add(1))
	g.live.Store(true)
	return t
}

// Cancel invalidates the outstanding token.
func (g *Generation) Cancel() {
	g.current.Add(1)
	g.live.Store(false)
}

// Valid reports whether t is the outstanding token.
func (g *Generation) Valid(t Token) bool {
	return g.live.Load() && Token(g.current.Load()) == t
}

// Current returns the outstanding token and whether one is live.
func (g *Generation) Current() (Token, bool) {
	return Token(g.current.Load()), g.live.Load()
}
