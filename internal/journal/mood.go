package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wellspring/internal/catalog"
	"wellspring/internal/kv"

	"go.uber.org/zap"
)

// DateLayout is the calendar-day key format.
const DateLayout = "2006-01-02"

// MoodRecord is one day's confirmed mood.
type MoodRecord struct {
	Date string           `json:"date"`
	Mood catalog.Category `json:"mood"`
}

// MoodLog holds at most one MoodRecord per calendar day under mood_<date>.
type MoodLog struct {
	coll *kv.Collection
	log  *zap.Logger
}

// NewMoodLog returns the mood log stored in store.
func NewMoodLog(store kv.Store, log *zap.Logger) *MoodLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &MoodLog{coll: kv.NewCollection(store, PrefixMood), log: log}
}

// Record writes mood for the local calendar day of at. The last write of a day wins.
func (m *MoodLog) Record(ctx context.Context, at time.Time, mood catalog.Category) (MoodRecord, error) {
	rec := MoodRecord{Date: at.Format(DateLayout), Mood: mood}
	return rec, m.Put(ctx, rec)
}

// Put stores rec under its date.
func (m *MoodLog) Put(ctx context.Context, rec MoodRecord) error {
	if !rec.Mood.Valid() {
		return fmt.Errorf("unknown mood %q", rec.Mood)
	}
	if _, err := time.Parse(DateLayout, rec.Date); err != nil {
		return fmt.Errorf("invalid mood date %q: %w", rec.Date, err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode mood: %w", err)
	}
	if err := m.coll.Put(ctx, rec.Date, string(data)); err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	m.log.Debug("mood recorded", zap.String("date", rec.Date), zap.String("mood", string(rec.Mood)))
	return nil
}

// List returns every readable record sorted by date. Malformed JSON and
// unknown moods are skipped and counted.
func (m *MoodLog) List(ctx context.Context) ([]MoodRecord, int, error) {
	entries, err := m.coll.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list moods: %w", err)
	}
	records := make([]MoodRecord, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		var rec MoodRecord
		if err := json.Unmarshal([]byte(e.Value), &rec); err != nil || !rec.Mood.Valid() {
			m.log.Warn("skipping invalid mood entry", zap.String("key", m.coll.Key(e.ID)))
			skipped++
			continue
		}
		if rec.Date == "" {
			rec.Date = e.ID
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// Clear removes every mood record.
func (m *MoodLog) Clear(ctx context.Context) (int, error) {
	n, err := m.coll.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear moods: %w", err)
	}
	return n, nil
}
