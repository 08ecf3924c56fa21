package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"wellspring/internal/kv"

	"go.uber.org/zap"
)

// SavedAffirmation is one entry of the saved list.
type SavedAffirmation struct {
	Text    string
	SavedAt time.Time // zero for entries without a recorded time
	Legacy  bool      // stored under an affirmation_<datetime> key
}

// AffirmationVault is the saved-affirmations list. New saves go to the
// savedAffirmations JSON array; older installs also kept one key per
// affirmation under affirmation_<ISO datetime>, which is read and deleted
// but never written.
type AffirmationVault struct {
	store  kv.Store
	legacy *kv.Collection
	log    *zap.Logger
}

// NewAffirmationVault returns the vault stored in store.
func NewAffirmationVault(store kv.Store, log *zap.Logger) *AffirmationVault {
	if log == nil {
		log = zap.NewNop()
	}
	return &AffirmationVault{
		store:  store,
		legacy: kv.NewCollection(store, PrefixAffirmation),
		log:    log,
	}
}

func (v *AffirmationVault) loadArray(ctx context.Context) ([]string, error) {
	raw, ok, err := v.store.Get(ctx, KeySavedAffirmations)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved affirmations: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		v.log.Warn("treating malformed savedAffirmations as empty", zap.Error(err))
		return nil, nil
	}
	return list, nil
}

func (v *AffirmationVault) storeArray(ctx context.Context, list []string) error {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode saved affirmations: %w", err)
	}
	if err := v.store.Set(ctx, KeySavedAffirmations, string(data)); err != nil {
		return fmt.Errorf("failed to save affirmations: %w", err)
	}
	return nil
}

// Save appends text unless it is already saved. It reports whether text was added.
func (v *AffirmationVault) Save(ctx context.Context, text string) (bool, error) {
	if text == "" {
		return false, fmt.Errorf("empty affirmation")
	}
	saved, err := v.Contains(ctx, text)
	if err != nil || saved {
		return false, err
	}
	list, err := v.loadArray(ctx)
	if err != nil {
		return false, err
	}
	if err := v.storeArray(ctx, append(list, text)); err != nil {
		return false, err
	}
	v.log.Debug("affirmation saved", zap.String("text", text))
	return true, nil
}

// Contains reports whether text is saved under either storage form.
func (v *AffirmationVault) Contains(ctx context.Context, text string) (bool, error) {
	list, err := v.List(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range list {
		if s.Text == text {
			return true, nil
		}
	}
	return false, nil
}

// List returns saved affirmations deduplicated by text: legacy entries newest
// first, then array entries in the order they were saved. A text present in
// both forms is listed once, as an array entry.
func (v *AffirmationVault) List(ctx context.Context) ([]SavedAffirmation, error) {
	entries, err := v.legacy.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load legacy affirmations: %w", err)
	}
	array, err := v.loadArray(ctx)
	if err != nil {
		return nil, err
	}

	inArray := make(map[string]bool, len(array))
	for _, t := range array {
		inArray[t] = true
	}

	var legacy []SavedAffirmation
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Value == "" || inArray[e.Value] || seen[e.Value] {
			continue
		}
		seen[e.Value] = true
		legacy = append(legacy, SavedAffirmation{Text: e.Value, SavedAt: parseLegacyTime(e.ID), Legacy: true})
	}
	sort.SliceStable(legacy, func(i, j int) bool {
		a, b := legacy[i].SavedAt, legacy[j].SavedAt
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})

	out := legacy
	for _, t := range array {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, SavedAffirmation{Text: t})
	}
	return out, nil
}

// Delete removes text from both storage forms and reports whether anything was removed.
func (v *AffirmationVault) Delete(ctx context.Context, text string) (bool, error) {
	removed := false

	entries, err := v.legacy.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load legacy affirmations: %w", err)
	}
	for _, e := range entries {
		if e.Value != text {
			continue
		}
		if err := v.legacy.Remove(ctx, e.ID); err != nil {
			return removed, fmt.Errorf("failed to delete affirmation: %w", err)
		}
		removed = true
	}

	list, err := v.loadArray(ctx)
	if err != nil {
		return removed, err
	}
	kept := list[:0:0]
	for _, t := range list {
		if t != text {
			kept = append(kept, t)
		}
	}
	if len(kept) != len(list) {
		if err := v.storeArray(ctx, kept); err != nil {
			return removed, err
		}
		removed = true
	}
	return removed, nil
}

// Clear removes every saved affirmation, legacy keys included.
func (v *AffirmationVault) Clear(ctx context.Context) error {
	ids, err := v.legacy.IDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list legacy affirmations: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, v.legacy.Key(id))
	}
	keys = append(keys, KeySavedAffirmations)
	if err := v.store.MultiRemove(ctx, keys); err != nil {
		return fmt.Errorf("failed to clear affirmations: %w", err)
	}
	return nil
}

var legacyLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseLegacyTime(id string) time.Time {
	for _, layout := range legacyLayouts {
		if t, err := time.Parse(layout, id); err == nil {
			return t
		}
	}
	return time.Time{}
}
