// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package sink implements the outputs of channel messages.
// The writer sink prints debug-style lines to an io.Writer, the logger sink forwards the
// messages to the service structured logger.
package sink
