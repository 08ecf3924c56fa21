package share

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubSharer struct {
	out   Outcome
	err   error
	calls int
}

func (s *stubSharer) Share(context.Context, Payload) (Outcome, error) {
	s.calls++
	return s.out, s.err
}

func TestPayloadText(t *testing.T) {
	assert.Equal(t, "hello", Payload{Message: "hello"}.Text())
	assert.Equal(t, "T\n\nbody\n/tmp/a.png", Payload{Title: "T", Message: "body", ImagePath: "/tmp/a.png"}.Text())
}

func TestWriterSharer(t *testing.T) {
	var buf bytes.Buffer
	out, err := WriterSharer{W: &buf}.Share(context.Background(), Payload{Message: "My daily affirmation: x"})
	require.NoError(t, err)
	assert.Equal(t, Completed, out)
	assert.Equal(t, "My daily affirmation: x\n", buf.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err = WriterSharer{W: &buf}.Share(ctx, Payload{Message: "y"})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, out)
}

func TestFallback(t *testing.T) {
	first := &stubSharer{err: ErrUnavailable}
	second := &stubSharer{out: Completed}
	out, err := Fallback{first, second}.Share(context.Background(), Payload{})
	require.NoError(t, err)
	assert.Equal(t, Completed, out)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)

	_, err = Fallback{first}.Share(context.Background(), Payload{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSend_Logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	_, err := Send(context.Background(), &stubSharer{out: Completed}, Payload{Title: "a"}, log)
	require.NoError(t, err)
	_, err = Send(context.Background(), &stubSharer{out: Cancelled}, Payload{Title: "b"}, log)
	require.NoError(t, err)
	_, err = Send(context.Background(), &stubSharer{err: errors.New("boom")}, Payload{Title: "c"}, log)
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("share completed").Len())
	assert.Equal(t, 1, logs.FilterMessage("share cancelled").Len())
	assert.Equal(t, 1, logs.FilterMessage("share failed").Len())
}
