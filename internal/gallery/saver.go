package gallery

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// PermissionError is returned when saving is not allowed, either by the
// gallery.allow_save setting or by the operating system.
type PermissionError struct {
	Path   string
	Err    error
	Remedy string
}

func (e *PermissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("permission denied saving %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("permission denied saving %s", e.Path)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// Saver writes rendered artwork into Dir.
type Saver struct {
	Dir       string
	AllowSave bool
	Width     int
	Height    int

	Now func() time.Time
	Log *zap.Logger
}

// Save renders composition index and writes it as a PNG, returning the file path.
func (s *Saver) Save(ctx context.Context, index int) (string, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	if !s.AllowSave {
		err := &PermissionError{
			Path:   s.Dir,
			Remedy: "Saving images is turned off. Set gallery.allow_save: true in your config to allow it.",
		}
		log.Warn("gallery save refused", zap.Error(err))
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", s.classify(log, s.Dir, fmt.Errorf("failed to create gallery directory: %w", err))
	}

	path := filepath.Join(s.Dir, fmt.Sprintf("abstract_%d.png", now().UnixMilli()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", s.classify(log, path, fmt.Errorf("failed to create image file: %w", err))
	}

	img := Render(index, s.Width, s.Height)
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	log.Info("abstract image saved", zap.String("path", path), zap.Int("index", index))
	return path, nil
}

func (s *Saver) classify(log *zap.Logger, path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		perr := &PermissionError{
			Path:   path,
			Err:    err,
			Remedy: fmt.Sprintf("Grant write access to %s, or point gallery.dir (WELL_GALLERY_DIR) at a writable folder.", s.Dir),
		}
		log.Warn("gallery save denied", zap.Error(perr))
		return perr
	}
	log.Warn("gallery save failed", zap.Error(err))
	return err
}
