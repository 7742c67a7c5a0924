// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package channel

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateChannel is wrapped by DuplicateChannelError.
	ErrDuplicateChannel = errors.New("channel already registered")
	// ErrUnknownChannel is wrapped by UnknownChannelError.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrInvalidChannel reports a channel definition with an empty namespace, or a name
	// that is empty or padded with whitespace.
	ErrInvalidChannel = errors.New("invalid channel definition")
)

// DuplicateChannelError is returned when a name is registered twice.
type DuplicateChannelError struct {
	Name string
}

func (e *DuplicateChannelError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateChannel, e.Name)
}

func (e *DuplicateChannelError) Unwrap() error {
	return ErrDuplicateChannel
}

// UnknownChannelError is returned when a name was never registered.
type UnknownChannelError struct {
	Name string
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownChannel, e.Name)
}

func (e *UnknownChannelError) Unwrap() error {
	return ErrUnknownChannel
}
