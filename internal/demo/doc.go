// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package demo runs the startup walkthrough of the channel registry: it narrates every step
// on the console and emits on the built-in channels so the effect of each reconfiguration is
// visible in the channel output.
package demo
