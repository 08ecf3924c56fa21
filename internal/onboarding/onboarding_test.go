package onboarding

import (
	"context"
	"testing"

	"wellspring/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlow(t *testing.T) {
	f := NewFlow()
	require.Len(t, Cards(), 4)

	var titles []string
	for !f.Done() {
		titles = append(titles, f.Card().Title)
		f.Next()
	}
	assert.Equal(t, []string{"Welcome", "Find your type", "Your daily ritual", "Play and reflect"}, titles)
	assert.Equal(t, 3, f.Index())

	f.Next()
	assert.True(t, f.Done())
}

func TestCompletion(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	done, err := Completed(ctx, store)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, MarkCompleted(ctx, store))
	done, err = Completed(ctx, store)
	require.NoError(t, err)
	assert.True(t, done)
}
