package gallery

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	for i := 0; i < Count; i++ {
		img := Render(i, 90, 160)
		b := img.Bounds()
		assert.Equal(t, 90, b.Dx())
		assert.Equal(t, 160, b.Dy())
	}
	// out-of-range indexes wrap
	assert.Equal(t, Render(1, 20, 20), Render(4, 20, 20))
	assert.Equal(t, Render(2, 20, 20), Render(-1, 20, 20))
}

func TestSaver_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gallery")
	s := &Saver{
		Dir: dir, AllowSave: true, Width: 60, Height: 100,
		Now: func() time.Time { return time.UnixMilli(1700000000000) },
	}
	path, err := s.Save(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abstract_1700000000000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
}

func TestSaver_NotAllowed(t *testing.T) {
	s := &Saver{Dir: t.TempDir(), AllowSave: false}
	_, err := s.Save(context.Background(), 0)
	var perr *PermissionError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Remedy, "allow_save")
}

func TestSaver_OSDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	s := &Saver{Dir: dir, AllowSave: true, Width: 10, Height: 10}
	_, err := s.Save(context.Background(), 0)
	var perr *PermissionError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Remedy, dir)
}
