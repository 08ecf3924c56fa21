package roll

import (
	"context"
	"time"

	"wellspring/internal/choreo"
)

// DefaultOffsets are the times, from spin start, at which reels 1, 2 and 3 stop.
var DefaultOffsets = [NumReels]time.Duration{
	1500 * time.Millisecond,
	2000 * time.Millisecond,
	2500 * time.Millisecond,
}

// SettleEvent asks for reel Reel of the spin holding Token to stop.
type SettleEvent struct {
	Token choreo.Token
	Reel  int
}

// Schedule returns the settle plan for spin: reel i at offsets[i].
func Schedule(spin Spin, offsets [NumReels]time.Duration) []choreo.Step {
	steps := make([]choreo.Step, NumReels)
	for i := range steps {
		steps[i] = choreo.Step{At: offsets[i], Event: SettleEvent{Token: spin.Token, Reel: i}}
	}
	return steps
}

// Run drives spin to completion in real time and returns the final
// settlement. onSettle, if set, sees every reel as it stops. Cancelling ctx
// stops the timeline and resets nothing; the spin stays rolling until Reset.
func (e *Engine) Run(ctx context.Context, spin Spin, offsets [NumReels]time.Duration, onSettle func(Settlement)) (Settlement, error) {
	events := make(chan SettleEvent, NumReels)
	tl := choreo.Play(Schedule(spin, offsets), func(st choreo.Step) {
		events <- st.Event.(SettleEvent)
	})
	defer tl.Stop()

	for {
		select {
		case <-ctx.Done():
			return Settlement{}, ctx.Err()
		case ev := <-events:
			st, err := e.Settle(ev.Token, ev.Reel)
			if err != nil {
				return Settlement{}, err
			}
			if onSettle != nil {
				onSettle(st)
			}
			if st.Final {
				return st, nil
			}
		}
	}
}
