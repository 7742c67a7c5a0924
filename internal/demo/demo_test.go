// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package demo

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/nsdebug/internal/channel"
	"github.com/mia-platform/nsdebug/internal/sink"
)

func TestRun(t *testing.T) {
	t.Parallel()

	channelOutput := new(bytes.Buffer)
	registry := channel.NewRegistry(sink.NewWriterSink(channelOutput, sink.WithClock(func() time.Time { return time.Time{} })))
	require.NoError(t, registry.RegisterAll(channel.Defaults()))
	registry.SetActive("app:*")

	console := new(bytes.Buffer)
	require.NoError(t, Run(console, registry))

	expectedOutput := strings.Join([]string{
		"  app:always-on*      on... always +0ms",
		"  app:router:request  on +0ms",
		"  app:router:response on +0ms",
		"  app:always-on* is still active, even after Disable() +0ms",
		`  app:always-on* previous: "app:*" +0ms`,
		"  app:always-on* You won't see output from app:router:response +0ms",
		"  app:router:request but app:router:request is still active. +0ms",
		"  app:always-on*  And now all +0ms",
		"  app:router:request  namespaces +0ms",
		"  app:router:response work again +0ms",
		"",
	}, "\n")
	assert.Equal(t, expectedOutput, channelOutput.String())
	assert.Equal(t, "app:*", registry.Spec())

	assert.Contains(t, console.String(), "DEBUG: app:*")
	assert.Contains(t, console.String(), "registry.SetActive(previous + \",-app:router:response\")")
	assert.NotContains(t, console.String(), "YOU CAN'T SEE THIS")
}

func TestRunWithoutBuiltInChannels(t *testing.T) {
	t.Parallel()

	registry := channel.NewRegistry(nil)
	require.NoError(t, registry.Register("other", "app:other"))

	err := Run(new(bytes.Buffer), registry)
	require.ErrorIs(t, err, errDemoEmit)
	assert.ErrorIs(t, err, channel.ErrUnknownChannel)
}
