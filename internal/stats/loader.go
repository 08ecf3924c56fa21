package stats

import (
	"context"
	"fmt"

	"wellspring/internal/journal"
	"wellspring/internal/quiz"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dashboard is everything the statistics view shows.
type Dashboard struct {
	Profile    quiz.Personality
	HasProfile bool
	Summary    Summary
	Skipped    int // malformed mood records
}

// Loader reads the dashboard from the journal.
type Loader struct {
	profile *journal.Profile
	moods   *journal.MoodLog
	log     *zap.Logger
}

// NewLoader returns a loader over the profile and mood log.
func NewLoader(profile *journal.Profile, moods *journal.MoodLog, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{profile: profile, moods: moods, log: log}
}

// Load reads the profile and mood records concurrently.
func (l *Loader) Load(ctx context.Context) (Dashboard, error) {
	var (
		d       Dashboard
		records []journal.MoodRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, ok, err := l.profile.Load(gctx)
		if err != nil {
			return err
		}
		d.Profile, d.HasProfile = p, ok
		return nil
	})
	g.Go(func() error {
		recs, skipped, err := l.moods.List(gctx)
		if err != nil {
			return err
		}
		records, d.Skipped = recs, skipped
		return nil
	})
	if err := g.Wait(); err != nil {
		l.log.Warn("failed to load statistics", zap.Error(err))
		return Dashboard{}, fmt.Errorf("failed to load statistics: %w", err)
	}

	d.Summary = Compute(records)
	if !d.HasProfile {
		d.Profile = quiz.Soul
	}
	l.log.Debug("statistics loaded",
		zap.Int("rituals", d.Summary.TotalRituals),
		zap.Int("skipped", d.Skipped))
	return d, nil
}

// Reset deletes every mood record and reports how many were removed.
func (l *Loader) Reset(ctx context.Context) (int, error) {
	n, err := l.moods.Clear(ctx)
	if err != nil {
		return 0, err
	}
	l.log.Info("mood statistics reset", zap.Int("removed", n))
	return n, nil
}
