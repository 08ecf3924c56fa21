// Package journal stores the user's quiz profile, mood history and saved
// affirmations on top of a kv.Store.
package journal

import (
	"context"
	"fmt"

	"wellspring/internal/kv"
	"wellspring/internal/quiz"

	"go.uber.org/zap"
)

// Store keys.
const (
	KeyQuizResult        = "quizResult"
	KeySavedAffirmations = "savedAffirmations"
	PrefixMood           = "mood_"
	PrefixAffirmation    = "affirmation_"
)

// Profile is the persisted quiz result.
type Profile struct {
	store kv.Store
	log   *zap.Logger
}

// NewProfile returns the profile stored in store.
func NewProfile(store kv.Store, log *zap.Logger) *Profile {
	if log == nil {
		log = zap.NewNop()
	}
	return &Profile{store: store, log: log}
}

// Load returns the stored personality. An unknown stored value reads as absent.
func (p *Profile) Load(ctx context.Context) (quiz.Personality, bool, error) {
	v, ok, err := p.store.Get(ctx, KeyQuizResult)
	if err != nil {
		return "", false, fmt.Errorf("failed to load quiz result: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	pers := quiz.Personality(v)
	if !pers.Valid() {
		p.log.Warn("ignoring unknown quiz result", zap.String("value", v))
		return "", false, nil
	}
	return pers, true, nil
}

// Save overwrites the stored personality.
func (p *Profile) Save(ctx context.Context, pers quiz.Personality) error {
	if !pers.Valid() {
		return fmt.Errorf("unknown personality %q", pers)
	}
	if err := p.store.Set(ctx, KeyQuizResult, string(pers)); err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	return nil
}
