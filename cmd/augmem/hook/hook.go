// Package hookcmder provides the hook subcommands the Augment editor invokes.
// They are not user-facing: each reads one JSON payload from stdin, prints its
// result to stdout, and exits zero no matter what went wrong along the way.
package hookcmder

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/hooks"
)

const hookLongDesc string = `Hook handlers invoked by the Augment editor.

These subcommands are wired into ~/.augment/settings.json by 'augmem install'
and read their payload from stdin. They always exit zero: a memory server
problem must never block the assistant.`

const hookShortDesc string = "Augment lifecycle hook handlers"

func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  hookShortDesc,
		Long:   hookLongDesc,
		Hidden: true,
		Args:   cobra.NoArgs,
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newPostToolUseCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "session-start",
		Short:         "SessionStart hook - injects recalled memory context",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, func(ctx context.Context, r *hooks.Runner, in *hooks.Input) string {
				return r.SessionStart(ctx, in)
			})
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "stop",
		Short:         "Stop hook - captures the finished turn into working memory",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, func(ctx context.Context, r *hooks.Runner, in *hooks.Input) string {
				return r.Stop(ctx, in)
			})
		},
	}
}

func newPostToolUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "post-tool-use",
		Short:         "PostToolUse hook - records tool usage as session messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, func(ctx context.Context, r *hooks.Runner, in *hooks.Input) string {
				return r.PostToolUse(ctx, in)
			})
		},
	}
}
