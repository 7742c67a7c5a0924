// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package namespace parses activation specs and matches them against channel namespaces.
// A spec is a comma or whitespace separated list of patterns; a leading '-' marks an
// exclusion and a trailing '*' turns a pattern into a prefix match.
package namespace
