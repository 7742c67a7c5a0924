// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package channel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mia-platform/nsdebug/internal/namespace"
)

// Sink receives the messages of active channels.
type Sink interface {
	Write(namespace, message string) error
}

// Channel is a snapshot of a registered channel.
type Channel struct {
	Name      string
	Namespace string
	Active    bool
}

// Registry tracks the registered channels and their activation.
// It is safe for concurrent use: SetActive swaps the whole activation state under the
// write lock, so readers observe either the previous or the new state.
type Registry struct {
	sink Sink

	lock     sync.RWMutex
	channels []Channel
	index    map[string]int
	spec     namespace.Spec
}

// NewRegistry returns an empty registry writing to sink. A nil sink discards every message.
func NewRegistry(sink Sink) *Registry {
	if sink == nil {
		sink = discardSink{}
	}

	return &Registry{
		sink:  sink,
		index: make(map[string]int),
	}
}

// Register adds a channel. Its activation is computed against the currently applied spec.
func (r *Registry) Register(name, ns string) error {
	ns = strings.TrimSpace(ns)
	if name == "" || name != strings.TrimSpace(name) || ns == "" {
		return fmt.Errorf("%w: name %q, namespace %q", ErrInvalidChannel, name, ns)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found := r.index[name]; found {
		return &DuplicateChannelError{Name: name}
	}

	r.index[name] = len(r.channels)
	r.channels = append(r.channels, Channel{
		Name:      name,
		Namespace: ns,
		Active:    r.spec.Enabled(ns),
	})
	return nil
}

// RegisterAll registers every definition in order, stopping at the first error.
func (r *Registry) RegisterAll(definitions []Definition) error {
	for _, definition := range definitions {
		if err := r.Register(definition.Name, definition.Namespace); err != nil {
			return err
		}
	}

	return nil
}

// SetActive replaces the applied spec with rawSpec and recomputes every channel.
func (r *Registry) SetActive(rawSpec string) {
	spec := namespace.Parse(rawSpec)

	r.lock.Lock()
	defer r.lock.Unlock()

	r.apply(spec)
}

// Disable deactivates every channel that is not always-on and returns the spec that
// was applied before, so it can be restored later.
func (r *Registry) Disable() string {
	r.lock.Lock()
	defer r.lock.Unlock()

	previous := r.spec.String()
	r.apply(namespace.Spec{})
	return previous
}

// apply must be called with the write lock held.
func (r *Registry) apply(spec namespace.Spec) {
	for idx := range r.channels {
		r.channels[idx].Active = spec.Enabled(r.channels[idx].Namespace)
	}
	r.spec = spec
}

// Spec returns the canonical form of the applied spec.
func (r *Registry) Spec() string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.spec.String()
}

// IsActive returns the activation of the named channel.
func (r *Registry) IsActive(name string) (bool, error) {
	ch, err := r.Get(name)
	if err != nil {
		return false, err
	}

	return ch.Active, nil
}

// Get returns a snapshot of the named channel.
func (r *Registry) Get(name string) (Channel, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	idx, found := r.index[name]
	if !found {
		return Channel{}, &UnknownChannelError{Name: name}
	}

	return r.channels[idx], nil
}

// Channels returns a snapshot of every channel in registration order.
func (r *Registry) Channels() []Channel {
	r.lock.RLock()
	defer r.lock.RUnlock()

	channels := make([]Channel, len(r.channels))
	copy(channels, r.channels)
	return channels
}

// CurrentlyActive returns the active channels in registration order.
func (r *Registry) CurrentlyActive() []Channel {
	r.lock.RLock()
	defer r.lock.RUnlock()

	active := make([]Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		if ch.Active {
			active = append(active, ch)
		}
	}

	return active
}

// Emit writes message to the sink when the named channel is active.
func (r *Registry) Emit(name, message string) error {
	ch, err := r.Get(name)
	if err != nil {
		return err
	}

	if !ch.Active {
		return nil
	}

	return r.sink.Write(ch.Namespace, message)
}

// Emitf formats its arguments and calls Emit.
func (r *Registry) Emitf(name, format string, args ...any) error {
	return r.Emit(name, fmt.Sprintf(format, args...))
}

type discardSink struct{}

func (discardSink) Write(string, string) error { return nil }
