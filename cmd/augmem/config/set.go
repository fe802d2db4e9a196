package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/cliui"
)

const setLongDesc string = `Set a configuration value.

Writes the key into the config.toml resolved from the .augment/
directory, creating the file on first use. Values are validated
before anything is saved.

Valid keys:
  server_url, api_key, bearer_token, timeout,
  namespace, user_id,
  auto_capture, auto_recall, min_score, recall_limit,
  extraction_strategy, custom_prompt,
  summary_view_name, summary_time_window_days, summary_group_by,
  use_workspace_namespace, use_persistent_session,
  create_workspace_summary, create_session_summary, track_tool_usage

Examples:
  augmem config set server_url http://localhost:8000
  augmem config set user_id alice
  augmem config set recall_limit 10`

const setShortDesc string = "Set a configuration value"

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: setShortDesc,
		Long:  setLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runSet(args[0], args[1], configDir)
		},
		ValidArgsFunction: completeKeys,
	}
}

func runSet(key, value, configDir string) error {
	cfger, err := openConfiger(key, configDir)
	if err != nil {
		return err
	}

	if err := cfger.SetConfigValue(key, value); err != nil {
		return err
	}

	if secretKeys[key] {
		fmt.Printf("  %s Set %s\n\n", cliui.SuccessMark, cliui.KeyStyle.Render(key))
		return nil
	}

	fmt.Printf("  %s Set %s = %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(key),
		cliui.ValueStyle.Render(value))

	return nil
}
