// Package onboarding holds the splash screen and the first-run welcome cards.
package onboarding

import (
	"context"
	"fmt"

	"wellspring/internal/kv"
)

// KeyComplete marks onboarding as finished.
const KeyComplete = "onboardingComplete"

// Splash is shown while the app starts.
const Splash = "wellspring"

// Tagline is shown under the splash title.
const Tagline = "a small daily ritual for a calmer mind"

// Card is one welcome card. Body is markdown.
type Card struct {
	Title string
	Body  string
}

var cards = []Card{
	{
		Title: "Welcome",
		Body:  "Wellspring is a quiet place for a **few minutes a day**. No feeds, no streaks to lose.",
	},
	{
		Title: "Find your type",
		Body:  "Answer four short questions to discover whether you are a *Grounded Soul*, a *Driven Spark* or a *Flowing Seeker*.",
	},
	{
		Title: "Your daily ritual",
		Body:  "Each day brings one small task, one affirmation to keep, and a moment to name your mood.",
	},
	{
		Title: "Play and reflect",
		Body:  "Track how your moods balance out over time, and roll the reels for a small reward.",
	},
}

// Cards returns the welcome cards in order.
func Cards() []Card {
	return append([]Card(nil), cards...)
}

// Flow steps through the cards.
type Flow struct {
	index int
	done  bool
}

// NewFlow starts at the first card.
func NewFlow() *Flow { return &Flow{} }

// Card returns the current card.
func (f *Flow) Card() Card { return cards[f.index] }

// Index is the position of the current card.
func (f *Flow) Index() int { return f.index }

// Next advances one card. Advancing past the last card finishes the flow.
func (f *Flow) Next() {
	if f.done {
		return
	}
	if f.index < len(cards)-1 {
		f.index++
		return
	}
	f.done = true
}

// Done reports whether the flow has been finished.
func (f *Flow) Done() bool { return f.done }

// Completed reports whether onboarding was finished before.
func Completed(ctx context.Context, store kv.Store) (bool, error) {
	v, ok, err := store.Get(ctx, KeyComplete)
	if err != nil {
		return false, fmt.Errorf("failed to read onboarding state: %w", err)
	}
	return ok && v == "true", nil
}

// MarkCompleted records that onboarding was finished.
func MarkCompleted(ctx context.Context, store kv.Store) error {
	if err := store.Set(ctx, KeyComplete, "true"); err != nil {
		return fmt.Errorf("failed to save onboarding state: %w", err)
	}
	return nil
}
