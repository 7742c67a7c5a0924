// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/nsdebug/internal/channel"
	"github.com/mia-platform/nsdebug/internal/server"
)

var (
	errNoArguments = errors.New("no activation spec provided")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, channel.ErrDuplicateChannel), errors.Is(err, channel.ErrInvalidChannel):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// unwrappedError returns the unwrapped error if available, otherwise it returns the original error.
func unwrappedError(err error) error {
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return unwrapped
	}

	return err
}

// validArgsFunc completes the namespaces after the spec argument.
func validArgsFunc(namespaces map[string]string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		if len(args) > 0 {
			for ns, name := range namespaces {
				if strings.HasPrefix(ns, toComplete) {
					comps = append(comps, cobra.CompletionWithDesc(ns, name+" channel"))
				}
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}

// defaultNamespaces maps the namespaces of the built-in channels to their names.
func defaultNamespaces() map[string]string {
	namespaces := make(map[string]string)
	for _, definition := range channel.Defaults() {
		namespaces[definition.Namespace] = definition.Name
	}
	return namespaces
}

// collectPaths expands every directory in paths to the files it directly contains.
func collectPaths(paths []string) ([]string, error) {
	collected := make([]string, 0)
	for _, p := range paths {
		cleanedPath := filepath.Clean(p)
		err := filepath.Walk(cleanedPath, func(walkedPath string, info fs.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("channel file %q: %w", walkedPath, unwrappedError(err))
			}

			switch {
			case !info.IsDir(): // it's a file add to the collection
				collected = append(collected, walkedPath)
			case info.IsDir() && cleanedPath != walkedPath: // skip directories if is not the root path
				return filepath.SkipDir
			}

			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	return collected, nil
}

// newServer is the default server getter of the serve command.
func newServer(ctx context.Context, cfg *server.Config, registry *channel.Registry) (server.Server, error) {
	return server.NewServer(ctx, cfg, registry)
}
