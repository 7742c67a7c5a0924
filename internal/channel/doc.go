// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package channel holds the registry of named debug channels.
// Every channel is bound to a namespace at registration time; the registry decides which
// channels are active from the last applied activation spec and forwards messages of the
// active ones to a Sink.
package channel
