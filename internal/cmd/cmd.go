// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start the debug channels http server"
	serveCmdLong  = `Start the http server that owns the debug channels.

	The channels start with the activation spec read from the DEBUG environment
	variable; when DEBUG does not list the DEBUG_REQUIRED_PATTERN (app:* by default)
	the channels cannot be reconfigured and the walkthrough is skipped.

	Routes:
	- GET /debug-set/:namespaces applies a new activation spec
	- GET /* answers with a static page and logs the request on the channels`

	serveCmdExample = `# Serve with every app channel active
	DEBUG=app:* nsdebug serve

	# Serve with additional channels
	DEBUG=app:* nsdebug serve --channels-file channels.yaml`

	matchCmdUsage = "match SPEC [NAMESPACE...]"
	matchCmdShort = "show which namespaces an activation spec enables"
	matchCmdLong  = `Show which namespaces an activation spec enables.

	When no namespace is given the spec is applied to the channel table, the built-in
	channels plus the ones read from --channels-file.`

	matchCmdExample = `# Apply a spec to the channel table
	nsdebug match 'app:*,-app:router:response'

	# Check arbitrary namespaces
	nsdebug match 'app:*' app:db:query off:by:default`
)

// ServeCmd returns the Cobra command that starts the http server.
func ServeCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// MatchCmd returns the Cobra command that evaluates an activation spec offline.
func MatchCmd() *cobra.Command {
	flags := &matchFlags{}
	cmd := &cobra.Command{
		Use:     matchCmdUsage,
		Short:   heredoc.Doc(matchCmdShort),
		Long:    heredoc.Doc(matchCmdLong),
		Example: heredoc.Doc(matchCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(defaultNamespaces()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
