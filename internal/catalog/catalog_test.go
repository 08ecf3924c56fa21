package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"wellspring/internal/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Counts(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	for _, cat := range Categories {
		assert.Len(t, c.Tasks(cat), 10, "tasks for %s", cat)
	}
	assert.Len(t, c.Affirmations(Grounded), 10)
	assert.Len(t, c.Affirmations(Driven), 10)
	assert.Len(t, c.Affirmations(Flow), 9)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()
	tasks := c.Tasks(Grounded)
	tasks[0] = "mutated"
	assert.NotEqual(t, "mutated", c.Tasks(Grounded)[0])
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"grounded", Grounded, false},
		{" Driven ", Driven, false},
		{"FLOW", Flow, false},
		{"calm", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Calm & Centered", Grounded.Label())
	assert.Equal(t, "Driven & Focused", Driven.Label())
	assert.Equal(t, "Emotional & Flowing", Flow.Label())
	assert.Equal(t, "In Flow", Flow.Short())
}

func TestDrawTask_CategoryThenTask(t *testing.T) {
	c := Default()
	// first draw picks the category index, second the task index
	src := random.Fixed(1, 3)
	cat, task := c.DrawTask(src)
	assert.Equal(t, Driven, cat)
	assert.Equal(t, c.Tasks(Driven)[3], task)
	assert.Equal(t, 2, src.Draws())
}

func TestDrawAffirmation(t *testing.T) {
	c := Default()
	got := c.DrawAffirmation(random.Fixed(8), Flow)
	assert.Equal(t, "I dance with uncertainty and grow.", got)
}

func TestDrawTask_CoversEveryCategory(t *testing.T) {
	c := Default()
	src := random.New(42)
	seen := map[Category]int{}
	for i := 0; i < 600; i++ {
		cat, _ := c.DrawTask(src)
		seen[cat]++
	}
	for _, cat := range Categories {
		assert.Greater(t, seen[cat], 100, "category %s drawn too rarely", cat)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial override falls back", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
tasks:
  flow:
    - "Hum a tune."
affirmations:
  flow:
    - "I move like water."
`), 0644))
		c, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hum a tune."}, c.Tasks(Flow))
		assert.Equal(t, []string{"I move like water."}, c.Affirmations(Flow))
		assert.Len(t, c.Tasks(Grounded), 10)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tasks:\n  driven: []\n"), 0644))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tasks:\n  sleepy: [\"nap\"]\n"), 0644))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
