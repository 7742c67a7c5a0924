// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config reads the channel tables that extend the built-in debug channels.
package config
