// Package share hands text (and optionally an image path) to a sharing target.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Payload is what gets shared.
type Payload struct {
	Title     string
	Message   string
	ImagePath string
}

// Text renders the payload as plain text.
func (p Payload) Text() string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(p.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(p.Message)
	if p.ImagePath != "" {
		b.WriteString("\n")
		b.WriteString(p.ImagePath)
	}
	return b.String()
}

// Outcome reports how a share ended.
type Outcome string

const (
	Completed Outcome = "completed"
	Cancelled Outcome = "cancelled"
)

// ErrUnavailable is returned when the sharing target cannot be used here.
var ErrUnavailable = errors.New("sharing target unavailable")

// Sharer delivers a payload.
type Sharer interface {
	Share(ctx context.Context, p Payload) (Outcome, error)
}

// ClipboardSharer copies the payload text to the system clipboard.
type ClipboardSharer struct{}

func (ClipboardSharer) Share(ctx context.Context, p Payload) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Cancelled, nil
	}
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	if err := clipboard.WriteAll(p.Text()); err != nil {
		return "", fmt.Errorf("failed to write clipboard: %w", err)
	}
	return Completed, nil
}

// WriterSharer prints the payload text to W.
type WriterSharer struct {
	W io.Writer
}

func (s WriterSharer) Share(ctx context.Context, p Payload) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Cancelled, nil
	}
	if _, err := fmt.Fprintln(s.W, p.Text()); err != nil {
		return "", fmt.Errorf("failed to write share text: %w", err)
	}
	return Completed, nil
}

// Fallback tries each sharer in turn until one does not report ErrUnavailable.
type Fallback []Sharer

func (f Fallback) Share(ctx context.Context, p Payload) (Outcome, error) {
	for _, s := range f {
		out, err := s.Share(ctx, p)
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		return out, err
	}
	return "", ErrUnavailable
}

// Send shares p and logs how it went. The outcome is informational.
func Send(ctx context.Context, s Sharer, p Payload, log *zap.Logger) (Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	out, err := s.Share(ctx, p)
	switch {
	case err != nil:
		log.Warn("share failed", zap.String("title", p.Title), zap.Error(err))
	case out == Cancelled:
		log.Info("share cancelled", zap.String("title", p.Title))
	default:
		log.Info("share completed", zap.String("title", p.Title))
	}
	return out, err
}
