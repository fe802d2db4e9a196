// Package configcmder provides the config command for managing persistent
// augmem configuration stored in the .augment/ directory.
package configcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/cliui"
	"github.com/augmentcode/augmem/pkg/config"
)

const configLongDesc string = `Manage persistent augmem configuration.

Configuration is stored as config.toml in the .augment/ directory and
provides defaults for the hooks and CLI commands. Environment variables
(AGENT_MEMORY_*) and CLI flags take precedence over config file values.

Keys are flat and match their AGENT_MEMORY_* environment variables:
  server_url, api_key, bearer_token, timeout,
  namespace, user_id,
  auto_capture, auto_recall, min_score, recall_limit,
  extraction_strategy, custom_prompt,
  summary_view_name, summary_time_window_days, summary_group_by,
  use_workspace_namespace, use_persistent_session,
  create_workspace_summary, create_session_summary, track_tool_usage

Use subcommands to get, set, or list configuration values:
  augmem config set <key> <value>    Set a configuration value
  augmem config get <key>            Get a configuration value
  augmem config list                 List all configuration values

Examples:
  augmem config set server_url http://localhost:8000
  augmem config set auto_recall false
  augmem config get namespace
  augmem config list`

const configShortDesc string = "Manage persistent augmem configuration"

// Credential keys are stored in the config file but never echoed back.
var secretKeys = map[string]bool{
	"api_key":      true,
	"bearer_token": true,
}

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// completeKeys offers the config key names for the first positional argument.
func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
}

// openConfiger validates the key, builds the Configer, and prints the
// config-file banner shared by get and set.
func openConfiger(key, configDir string) (*config.Configer, error) {
	if !config.IsValidConfigKey(key) {
		return nil, fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	printTarget(cfger.GetTarget())

	return cfger, nil
}

func printTarget(target string) {
	if target == "" {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
		return
	}
	fmt.Printf("\n  %s %s\n\n",
		cliui.KeyStyle.Render("Config file:"),
		cliui.DimStyle.Render(target))
}
