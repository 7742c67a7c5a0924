// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/nsdebug/internal/channel"
)

type steppingClock struct {
	current time.Time
	steps   []time.Duration
}

func (c *steppingClock) now() time.Time {
	if len(c.steps) > 0 {
		c.current = c.current.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	return c.current
}

func TestWriterSink(t *testing.T) {
	t.Parallel()

	clock := &steppingClock{
		current: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		steps:   []time.Duration{0, 12 * time.Millisecond, 3 * time.Second, 0},
	}

	buffer := new(bytes.Buffer)
	sink := NewWriterSink(buffer, WithColors(false), WithClock(clock.now))

	require.NoError(t, sink.Write("app:router:request", "first"))
	require.NoError(t, sink.Write("app:router:request", "second"))
	require.NoError(t, sink.Write("app:router:request", "multi\nline"))
	require.NoError(t, sink.Write("app:always-on*", "other namespace"))

	expectedOutput := `  app:router:request first +0ms
  app:router:request second +12ms
  app:router:request multi
  app:router:request line +3s
  app:always-on* other namespace +0ms
`
	assert.Equal(t, expectedOutput, buffer.String())
}

func TestWriterSinkColors(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	sink := NewWriterSink(buffer, WithColors(true))

	require.NoError(t, sink.Write("app:router:request", "colored"))
	assert.Contains(t, buffer.String(), "\x1b[")
	assert.Contains(t, buffer.String(), "colored")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriterSinkError(t *testing.T) {
	t.Parallel()

	sink := NewWriterSink(failingWriter{})
	err := sink.Write("app:router:request", "message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app:router:request")
}

func TestWriterSinkThroughRegistry(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	registry := channel.NewRegistry(NewWriterSink(buffer, WithClock(func() time.Time { return time.Time{} })))
	require.NoError(t, registry.RegisterAll(channel.Defaults()))
	registry.SetActive("app:*,-app:router:response")

	require.NoError(t, registry.Emit(channel.Request, "on"))
	require.NoError(t, registry.Emit(channel.Response, "off"))
	require.NoError(t, registry.Emit(channel.OffByDefault, "off"))

	assert.Equal(t, "  app:router:request on +0ms\n", buffer.String())
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	testCases := map[time.Duration]string{
		0:                       "0ms",
		999 * time.Millisecond:  "999ms",
		1200 * time.Millisecond: "1s",
		100 * time.Second:       "2m",
		3 * time.Hour:           "3h",
		49 * time.Hour:          "2d",
		1700 * time.Microsecond: "2ms",
	}

	for elapsed, expected := range testCases {
		assert.Equal(t, expected, formatElapsed(elapsed), "elapsed %s", elapsed)
	}
}
