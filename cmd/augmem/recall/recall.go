// Package recallcmder provides the recall command for previewing the memory
// context a new session would receive.
package recallcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/augmentcode/augmem/pkg/cliui"
	"github.com/augmentcode/augmem/pkg/config"
	"github.com/augmentcode/augmem/pkg/hooks"
	"github.com/augmentcode/augmem/pkg/logger"
	"github.com/augmentcode/augmem/pkg/memory"
)

type recallCommander struct {
	query string
	raw   bool

	serverURL string
	namespace string
	userID    string
	limit     int
	minScore  float64

	settings *config.Settings

	debug  bool
	logger *zap.Logger
}

const recallLongDesc string = `Preview recalled memory context.

Runs the same recall pipeline the SessionStart hook uses - workspace and
session summaries plus a semantic search over long-term memories - and
renders the result, so you can see exactly what a new session in this
workspace would receive.

Without a query, searches with the same default text the hook uses at
session start.

Example:
  augmem recall
  augmem recall "postgres connection settings"
  augmem recall --limit 10 --min-score 0.2
  augmem recall --raw`

const recallShortDesc string = "Preview recalled memory context"

func NewRecallCmd() *cobra.Command {
	cmder := &recallCommander{}

	cmd := &cobra.Command{
		Use:   "recall [query]",
		Short: recallShortDesc,
		Long:  recallLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("initializing config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagServerURL,
				config.FlagNamespace,
				config.FlagUser,
				config.FlagRecallLimit,
				config.FlagMinScore,
			})

			cmder.settings = config.LoadSettings(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = hooks.DefaultRecallQuery
			if len(args) > 0 {
				cmder.query = args[0]
			}

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagServerURL, &cmder.serverURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagNamespace, &cmder.namespace)
	config.AddStringFlag(cmd, config.Flags, config.FlagUser, &cmder.userID)
	config.AddIntFlag(cmd, config.Flags, config.FlagRecallLimit, &cmder.limit)
	config.AddFloat64Flag(cmd, config.Flags, config.FlagMinScore, &cmder.minScore)
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print the raw markdown without terminal rendering")

	return cmd
}

func (c *recallCommander) run(ctx context.Context) error {
	c.logger = logger.New(c.debug)
	defer func() { _ = c.logger.Sync() }()

	client := memory.NewHTTPClient(memory.HTTPClientConfig{
		BaseURL:     c.settings.ServerURL,
		APIKey:      c.settings.APIKey,
		BearerToken: c.settings.BearerToken,
		Timeout:     c.settings.Timeout,
	})
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("memory server unreachable at %s: %w", c.settings.ServerURL, err)
	}

	runner := hooks.NewRunner(c.settings, client, c.logger)
	block := runner.Recall(ctx, &hooks.Input{}, c.query)
	if block == "" {
		fmt.Println("No memory context available.")
		return nil
	}

	if c.raw {
		fmt.Println(block)
		return nil
	}

	rendered, err := cliui.RenderMarkdown(block)
	if err != nil {
		c.logger.Debug("markdown rendering failed", zap.Error(err))
	}
	fmt.Print(rendered)

	return nil
}
