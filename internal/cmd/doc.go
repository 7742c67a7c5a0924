// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package cmd contains the subcommands of the nsdebug cli.
package cmd
