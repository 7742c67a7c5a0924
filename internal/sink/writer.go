// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/mia-platform/nsdebug/internal/channel"
)

var _ channel.Sink = &writerSink{}

var palette = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgRed,
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgHiYellow,
	color.FgHiBlue,
	color.FgHiMagenta,
	color.FgHiRed,
}

// Option configures a writer sink.
type Option func(*writerSink)

// WithColors enables or disables the per namespace coloring.
func WithColors(enabled bool) Option {
	return func(s *writerSink) {
		s.colors = enabled
	}
}

// WithClock overrides the clock used to compute the elapsed time between messages.
func WithClock(now func() time.Time) Option {
	return func(s *writerSink) {
		s.now = now
	}
}

type writerSink struct {
	writer io.Writer
	colors bool
	now    func() time.Time

	lock     sync.Mutex
	previous map[string]time.Time
	painters map[string]*color.Color
}

// NewWriterSink returns a sink that writes one line per message to w, in the form
// "namespace message +elapsed", where elapsed is the time since the previous message
// of the same namespace.
func NewWriterSink(w io.Writer, opts ...Option) channel.Sink {
	s := &writerSink{
		writer:   w,
		now:      time.Now,
		previous: make(map[string]time.Time),
		painters: make(map[string]*color.Color),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *writerSink) Write(namespace, message string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()
	elapsed := time.Duration(0)
	if previous, found := s.previous[namespace]; found {
		elapsed = now.Sub(previous)
	}
	s.previous[namespace] = now

	painter := s.painter(namespace)
	builder := new(strings.Builder)
	for idx, line := range strings.Split(message, "\n") {
		if idx > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  " + painter.Sprint(namespace) + " " + line)
	}
	builder.WriteString(" " + painter.Sprint("+"+formatElapsed(elapsed)) + "\n")

	if _, err := fmt.Fprint(s.writer, builder.String()); err != nil {
		return fmt.Errorf("writing %q message: %w", namespace, err)
	}
	return nil
}

func (s *writerSink) painter(namespace string) *color.Color {
	if painter, found := s.painters[namespace]; found {
		return painter
	}

	hash := fnv.New32a()
	_, _ = hash.Write([]byte(namespace))
	painter := color.New(palette[hash.Sum32()%uint32(len(palette))])
	if s.colors {
		painter.EnableColor()
	} else {
		painter.DisableColor()
	}

	s.painters[namespace] = painter
	return painter
}

// formatElapsed renders d with the largest unit that fits, rounding to the nearest integer.
func formatElapsed(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	units := []struct {
		size   float64
		suffix string
	}{
		{size: float64(24 * time.Hour / time.Millisecond), suffix: "d"},
		{size: float64(time.Hour / time.Millisecond), suffix: "h"},
		{size: float64(time.Minute / time.Millisecond), suffix: "m"},
		{size: float64(time.Second / time.Millisecond), suffix: "s"},
	}

	for _, unit := range units {
		if ms >= unit.size {
			return fmt.Sprintf("%.0f%s", ms/unit.size, unit.suffix)
		}
	}

	return fmt.Sprintf("%.0fms", ms)
}
