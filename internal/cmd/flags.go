// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"
)

const (
	channelsFileFlagName  = "channels-file"
	channelsFileFlagShort = "f"
	channelsFileFlagUsage = "Path to a file or directory containing additional channel definitions. Can be specified multiple times."

	skipDemoFlagName  = "skip-demo"
	skipDemoFlagUsage = "If set, the startup walkthrough of the channels is not run"
	defaultSkipDemo   = false
)

// serveFlags holds the flags for the "serve" command.
type serveFlags struct {
	channelsPaths []string
	skipDemo      bool
}

// addFlags registers the CLI flags on cmd.
func (f *serveFlags) addFlags(cmd *cobra.Command) {
	addChannelsFileFlag(cmd, &f.channelsPaths)
	cmd.Flags().BoolVar(&f.skipDemo, skipDemoFlagName, defaultSkipDemo, skipDemoFlagUsage)
}

// toOptions builds the serve options from the parsed flags.
func (f *serveFlags) toOptions(cmd *cobra.Command) (*serveOptions, error) {
	channelsPaths, err := collectPaths(f.channelsPaths)
	if err != nil {
		return nil, err
	}

	return &serveOptions{
		channelsPaths: channelsPaths,
		skipDemo:      f.skipDemo,
		consoleOut:    cmd.OutOrStdout(),
		channelOut:    cmd.ErrOrStderr(),
		serverGetter:  newServer,
	}, nil
}

// matchFlags holds the flags for the "match" command.
type matchFlags struct {
	channelsPaths []string
}

// addFlags registers the CLI flags on cmd.
func (f *matchFlags) addFlags(cmd *cobra.Command) {
	addChannelsFileFlag(cmd, &f.channelsPaths)
}

// toOptions builds the match options from the parsed flags and CLI arguments.
func (f *matchFlags) toOptions(cmd *cobra.Command, args []string) (*matchOptions, error) {
	channelsPaths, err := collectPaths(f.channelsPaths)
	if err != nil {
		return nil, err
	}

	opts := &matchOptions{
		channelsPaths: channelsPaths,
		out:           cmd.OutOrStdout(),
	}
	if len(args) > 0 {
		opts.spec = args[0]
		opts.specGiven = true
		opts.namespaces = args[1:]
	}

	return opts, nil
}

func addChannelsFileFlag(cmd *cobra.Command, paths *[]string) {
	cmd.Flags().StringArrayVarP(
		paths,
		channelsFileFlagName,
		channelsFileFlagShort,
		nil,
		channelsFileFlagUsage)
}
