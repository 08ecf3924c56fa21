package roll

import (
	"context"
	"testing"
	"time"

	"wellspring/internal/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func settleAll(t *testing.T, e *Engine, spin Spin) Settlement {
	t.Helper()
	var last Settlement
	for reel := 0; reel < NumReels; reel++ {
		st, err := e.Settle(spin.Token, reel)
		require.NoError(t, err)
		last = st
	}
	return last
}

func TestMissThenForcedWin(t *testing.T) {
	// reels 0,1,2 on the free roll, then forced index 1 (flame)
	e := NewEngine(random.Fixed(0, 1, 2, 1), nil)

	spin, err := e.Start()
	require.NoError(t, err)
	assert.False(t, spin.Forced)
	assert.NotEmpty(t, spin.ID)

	last := settleAll(t, e, spin)
	assert.True(t, last.Final)
	assert.False(t, last.Win)
	assert.True(t, last.TryAgain)

	st := e.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Equal(t, 1, st.Attempts)
	assert.Equal(t, [NumReels]Symbol{Lotus, Flame, Wave}, st.Reels)

	spin, err = e.Start()
	require.NoError(t, err)
	assert.True(t, spin.Forced)
	assert.Equal(t, 2, e.State().Attempts)

	last = settleAll(t, e, spin)
	require.True(t, last.Win)
	assert.Equal(t, PrizeWallpaper, last.Prize.Kind)

	st = e.State()
	assert.Equal(t, PhaseResolved, st.Phase)
	assert.Zero(t, st.Attempts)
	assert.False(t, st.Forced)
	assert.True(t, st.PrizeVisible)
	assert.Equal(t, [NumReels]Symbol{Flame, Flame, Flame}, st.Reels)
}

func TestNaturalWin_AbstractDrawsImage(t *testing.T) {
	e := NewEngine(random.Fixed(2, 2, 2, 1), nil)
	spin, err := e.Start()
	require.NoError(t, err)

	last := settleAll(t, e, spin)
	require.True(t, last.Win)
	assert.Equal(t, PrizeAbstract, last.Prize.Kind)
	assert.Equal(t, 1, last.Prize.AbstractIndex)
	assert.Equal(t, "ABSTRACT IMAGE", last.Prize.Title())
}

func TestStoryPrize(t *testing.T) {
	e := NewEngine(random.Fixed(0), nil)
	spin, err := e.Start()
	require.NoError(t, err)
	last := settleAll(t, e, spin)
	require.True(t, last.Win)
	assert.Equal(t, PrizeStory, last.Prize.Kind)
	assert.Equal(t, "THE LAST PUSH", last.Prize.Title())
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, PrizeStory, KindFor(Lotus))
	assert.Equal(t, PrizeWallpaper, KindFor(Flame))
	assert.Equal(t, PrizeAbstract, KindFor(Wave))
}

func TestStart_WhileRolling(t *testing.T) {
	e := NewEngine(random.Fixed(0, 1, 2), nil)
	_, err := e.Start()
	require.NoError(t, err)
	before := e.State()

	_, err = e.Start()
	assert.ErrorIs(t, err, ErrAlreadyRolling)
	assert.Equal(t, before, e.State())
}

func TestSettle_Order(t *testing.T) {
	e := NewEngine(random.Fixed(0, 1, 2), nil)
	spin, err := e.Start()
	require.NoError(t, err)

	_, err = e.Settle(spin.Token, 1)
	assert.ErrorIs(t, err, ErrOutOfOrder)
	_, err = e.Settle(spin.Token, 0)
	require.NoError(t, err)
	_, err = e.Settle(spin.Token, 0)
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestReset_InvalidatesSpin(t *testing.T) {
	e := NewEngine(random.Fixed(0, 1, 2), nil)
	spin, err := e.Start()
	require.NoError(t, err)
	_, err = e.Settle(spin.Token, 0)
	require.NoError(t, err)

	e.Reset()
	_, err = e.Settle(spin.Token, 1)
	assert.ErrorIs(t, err, ErrStaleSpin)

	st := e.State()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Zero(t, st.Attempts)
	assert.Nil(t, st.Prize)
	assert.False(t, st.WallpaperApplied)
}

func TestSettle_AfterFinalIsStale(t *testing.T) {
	e := NewEngine(random.Fixed(1), nil)
	spin, err := e.Start()
	require.NoError(t, err)
	settleAll(t, e, spin)
	_, err = e.Settle(spin.Token, 2)
	assert.ErrorIs(t, err, ErrStaleSpin)
}

func TestApplyWallpaperAndDismiss(t *testing.T) {
	e := NewEngine(random.Fixed(0), nil)
	assert.ErrorIs(t, e.ApplyWallpaper(), ErrNoWallpaper)

	spin, _ := e.Start()
	settleAll(t, e, spin) // story
	assert.ErrorIs(t, e.ApplyWallpaper(), ErrNoWallpaper)
	e.DismissPrize()
	assert.False(t, e.State().PrizeVisible)
	assert.NotNil(t, e.State().Prize, "dismiss keeps the prize")

	e = NewEngine(random.Fixed(1), nil)
	spin, _ = e.Start()
	settleAll(t, e, spin)
	require.NoError(t, e.ApplyWallpaper())
	st := e.State()
	assert.True(t, st.WallpaperApplied)
	assert.False(t, st.PrizeVisible)

	// the equipped background survives later rolls until Reset
	_, err := e.Start()
	require.NoError(t, err)
	assert.True(t, e.State().WallpaperApplied)
	e.Reset()
	assert.False(t, e.State().WallpaperApplied)
}

func TestStateIsACopy(t *testing.T) {
	e := NewEngine(random.Fixed(2, 2, 2, 0), nil)
	spin, _ := e.Start()
	settleAll(t, e, spin)
	st := e.State()
	st.Prize.AbstractIndex = 2
	assert.Equal(t, 0, e.State().Prize.AbstractIndex)
}

func TestSchedule(t *testing.T) {
	spin := Spin{Token: 7}
	steps := Schedule(spin, DefaultOffsets)
	require.Len(t, steps, NumReels)
	for i, st := range steps {
		assert.Equal(t, DefaultOffsets[i], st.At)
		assert.Equal(t, SettleEvent{Token: 7, Reel: i}, st.Event)
	}
}

func TestRun(t *testing.T) {
	e := NewEngine(random.Fixed(0, 1, 2, 2, 1), nil)
	offsets := [NumReels]time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}

	spin, err := e.Start()
	require.NoError(t, err)
	var reels []int
	final, err := e.Run(context.Background(), spin, offsets, func(st Settlement) {
		reels = append(reels, st.Reel)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, reels)
	assert.True(t, final.TryAgain)

	spin, err = e.Start()
	require.NoError(t, err)
	final, err = e.Run(context.Background(), spin, offsets, nil)
	require.NoError(t, err)
	assert.True(t, final.Win)
	assert.Equal(t, PrizeAbstract, final.Prize.Kind)
}

func TestRun_Cancelled(t *testing.T) {
	e := NewEngine(random.Fixed(0, 1, 2), nil)
	spin, err := e.Start()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx, spin, [NumReels]time.Duration{time.Hour, time.Hour, time.Hour}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, PhaseRolling, e.State().Phase)
}
