package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/cliui"
)

const getLongDesc string = `Get a configuration value.

Looks the key up in the config.toml resolved from the .augment/
directory, falling back to its default when unset. Credential keys
print <set, hidden> instead of the value.

Examples:
  augmem config get server_url
  augmem config get recall_limit`

const getShortDesc string = "Get a configuration value"

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: getShortDesc,
		Long:  getLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runGet(args[0], configDir)
		},
		ValidArgsFunction: completeKeys,
	}
}

func runGet(key, configDir string) error {
	cfger, err := openConfiger(key, configDir)
	if err != nil {
		return err
	}

	value, err := cfger.GetConfigValue(key)
	if err != nil {
		return err
	}

	display := cliui.ValueStyle.Render(value)
	switch {
	case value == "":
		display = cliui.DimStyle.Render("<not set>")
	case secretKeys[key]:
		display = cliui.DimStyle.Render("<set, hidden>")
	}
	fmt.Printf("  %s  %s\n\n", cliui.KeyStyle.Render(key), display)

	return nil
}
