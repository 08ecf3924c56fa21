package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  grounded: [\"one\"]\n"), 0644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, w.Current().Tasks(Grounded))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  grounded: [\"two\"]\n"), 0644))
	require.Eventually(t, func() bool {
		return w.Current().Tasks(Grounded)[0] == "two"
	}, 3*time.Second, 20*time.Millisecond)

	// An invalid edit keeps the previous catalog.
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  grounded: []\n"), 0644))
	require.Eventually(t, func() bool {
		_, failures := w.Stats()
		return failures > 0
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"two"}, w.Current().Tasks(Grounded))
}

func TestWatcher_MissingFileUsesDefaults(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	defer w.Stop()
	assert.Len(t, w.Current().Tasks(Driven), 10)
}
