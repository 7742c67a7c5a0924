// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package demo

import (
	"errors"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/mia-platform/nsdebug/internal/channel"
)

const (
	introNarration = `
	All the channels whose namespace starts with 'app:' are active because the startup spec
	lists 'app:*'. The namespace 'app:always-on*' ends with a '*', so it stays active whatever
	the spec is, unless a '-' exclusion matches it.

	  previous := registry.Disable()
	`

	replaceNarration = `
	SetActive(<spec>) activates only the namespaces matched by <spec>, every other channel is
	switched off. To switch off a single namespace:
	1. apply again the spec that is currently active
	2. append a '-' exclusion for the namespace to switch off

	  registry.SetActive(previous + ",-app:router:response")
	`

	restoreNarration = `
	Restore the previous spec; 'off:by:default' stays off as it was never enabled.

	  registry.SetActive(previous)
	`

	completeNarration = `
	The walkthrough is complete and the server can use the debug channels.
	`
)

var errDemoEmit = errors.New("demo channel emit failed")

type step struct {
	channel string
	message string
}

// emitter forwards messages to the registry and keeps the first failure.
type emitter struct {
	registry *channel.Registry
	err      error
}

func (e *emitter) emit(steps ...step) {
	for _, s := range steps {
		if err := e.registry.Emit(s.channel, s.message); err != nil && e.err == nil {
			e.err = err
		}
	}
}

// Run walks through disabling, selectively excluding and restoring the registry channels.
// When it returns the registry has the same spec it had on entry.
func Run(out io.Writer, registry *channel.Registry) error {
	e := &emitter{registry: registry}
	narrate := func(text string) {
		fmt.Fprintln(out, heredoc.Doc(text))
	}

	fmt.Fprintln(out, "\nTesting the debug channels on start up:")
	fmt.Fprintf(out, "DEBUG: %s\n\n", registry.Spec())

	e.emit(
		step{channel: channel.AlwaysOn, message: "     on... always"},
		step{channel: channel.Request, message: " on"},
		step{channel: channel.Response, message: "on"},
	)

	narrate(introNarration)
	previous := registry.Disable()
	e.emit(
		step{channel: channel.AlwaysOn, message: "is still active, even after Disable()"},
		step{channel: channel.AlwaysOn, message: fmt.Sprintf("previous: %q", previous)},
	)

	narrate(replaceNarration)
	registry.SetActive(previous + ",-app:router:response")
	e.emit(
		step{channel: channel.AlwaysOn, message: "You won't see output from app:router:response"},
		step{channel: channel.Request, message: "but app:router:request is still active."},
		step{channel: channel.Response, message: "YOU CAN'T SEE THIS, EVEN IF I SHOUT!"},
	)

	narrate(restoreNarration)
	registry.SetActive(previous)
	e.emit(
		step{channel: channel.AlwaysOn, message: " And now all"},
		step{channel: channel.Request, message: " namespaces"},
		step{channel: channel.Response, message: "work again"},
		step{channel: channel.OffByDefault, message: "This won't be visible"},
	)

	narrate(completeNarration)

	if e.err != nil {
		return fmt.Errorf("%w: %w", errDemoEmit, e.err)
	}
	return nil
}
