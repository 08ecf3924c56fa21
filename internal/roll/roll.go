// Package roll implements the three-reel reward roll. Every roll after a
// miss is guaranteed to win.
package roll

import (
	"errors"
	"fmt"

	"wellspring/internal/choreo"
	"wellspring/internal/random"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase is the roll lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRolling
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRolling:
		return "rolling"
	case PhaseResolved:
		return "resolved"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	ErrAlreadyRolling = errors.New("a roll is already in progress")
	ErrStaleSpin      = errors.New("spin is no longer current")
	ErrOutOfOrder     = errors.New("reels must settle in order")
	ErrNoWallpaper    = errors.New("no wallpaper prize to apply")
)

// NumReels is the number of reels.
const NumReels = 3

// State is a snapshot of the roll.
type State struct {
	Phase            Phase
	Attempts         int // rolls since the last win
	Reels            [NumReels]Symbol
	Settled          int // reels settled in the current spin
	Forced           bool
	ForcedIndex      Symbol
	Prize            *Prize
	PrizeVisible     bool
	WallpaperApplied bool
	TryAgain         bool
}

// Spin identifies one started roll.
type Spin struct {
	ID     string
	Token  choreo.Token
	Forced bool
}

// Settlement is the result of settling one reel.
type Settlement struct {
	Reel     int
	Symbol   Symbol
	Final    bool   // last reel of the spin
	Win      bool   // all reels match
	TryAgain bool   // final reel settled without a match
	Prize    *Prize // set on a win
}

// Engine owns the roll state. It is not safe for concurrent use.
type Engine struct {
	rand  random.Source
	log   *zap.Logger
	gen   choreo.Generation
	state State
	spin  string
}

// NewEngine returns an idle roll.
func NewEngine(src random.Source, log *zap.Logger) *Engine {
	if src == nil {
		src = random.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{rand: src, log: log}
	e.state = initialState()
	return e
}

func initialState() State {
	return State{Reels: [NumReels]Symbol{Lotus, Flame, Wave}}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	s := e.state
	if s.Prize != nil {
		p := *s.Prize
		s.Prize = &p
	}
	return s
}

// Start begins a roll. The roll is forced to win when at least one roll has
// been made since the last win.
func (e *Engine) Start() (Spin, error) {
	if e.state.Phase == PhaseRolling {
		return Spin{}, ErrAlreadyRolling
	}

	forced := e.state.Attempts >= 1
	e.state.Attempts++
	e.state.Forced = forced
	e.state.ForcedIndex = 0
	if forced {
		e.state.ForcedIndex = Symbol(e.rand.IntN(NumSymbols))
	}
	e.state.Phase = PhaseRolling
	e.state.Settled = 0
	e.state.Prize = nil
	e.state.PrizeVisible = false
	e.state.TryAgain = false

	e.spin = uuid.NewString()
	spin := Spin{ID: e.spin, Token: e.gen.Next(), Forced: forced}
	e.log.Debug("roll started",
		zap.String("spin", spin.ID),
		zap.Int("attempts", e.state.Attempts),
		zap.Bool("forced", forced))
	return spin, nil
}

// Flicker returns a random face to show on a reel that is still spinning.
func (e *Engine) Flicker() Symbol {
	return Symbol(e.rand.IntN(NumSymbols))
}

// Settle stops reel for the spin identified by token. Reels settle in order
// 0, 1, 2; the third decides the outcome.
func (e *Engine) Settle(token choreo.Token, reel int) (Settlement, error) {
	if !e.gen.Valid(token) || e.state.Phase != PhaseRolling {
		return Settlement{}, ErrStaleSpin
	}
	if reel != e.state.Settled {
		return Settlement{}, fmt.Errorf("%w: got reel %d, want %d", ErrOutOfOrder, reel, e.state.Settled)
	}

	sym := e.state.ForcedIndex
	if !e.state.Forced {
		sym = Symbol(e.rand.IntN(NumSymbols))
	}
	e.state.Reels[reel] = sym
	e.state.Settled++

	st := Settlement{Reel: reel, Symbol: sym}
	if reel < NumReels-1 {
		return st, nil
	}

	e.gen.Cancel()
	st.Final = true
	r := e.state.Reels
	if r[0] == r[1] && r[1] == r[2] {
		prize := Prize{Kind: KindFor(r[2]), Symbol: r[2]}
		if prize.Kind == PrizeAbstract {
			prize.AbstractIndex = e.rand.IntN(NumAbstractImages)
		}
		e.state.Phase = PhaseResolved
		e.state.Attempts = 0
		e.state.Forced = false
		e.state.ForcedIndex = 0
		e.state.Prize = &prize
		e.state.PrizeVisible = true
		p := prize
		st.Win, st.Prize = true, &p
		e.log.Info("roll won", zap.String("spin", e.spin), zap.String("prize", string(prize.Kind)))
	} else {
		e.state.Phase = PhaseIdle
		e.state.TryAgain = true
		st.TryAgain = true
		e.log.Debug("roll missed", zap.String("spin", e.spin), zap.Int("attempts", e.state.Attempts))
	}
	return st, nil
}

// Reset returns to the initial idle state, cancelling any spin in flight.
func (e *Engine) Reset() {
	e.gen.Cancel()
	e.state = initialState()
	e.spin = ""
	e.log.Debug("roll reset")
}

// ApplyWallpaper equips the won wallpaper as the roll background.
func (e *Engine) ApplyWallpaper() error {
	if e.state.Prize == nil || e.state.Prize.Kind != PrizeWallpaper {
		return ErrNoWallpaper
	}
	e.state.WallpaperApplied = true
	e.state.PrizeVisible = false
	return nil
}

// DismissPrize hides the prize card without resetting the roll.
func (e *Engine) DismissPrize() {
	e.state.PrizeVisible = false
}
