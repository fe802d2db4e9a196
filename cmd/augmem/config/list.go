package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/config"
)

const listLongDesc string = `List all configuration values.

Prints every supported key with its current value, resolved from the
config.toml in the .augment/ directory with defaults filling the gaps.
Credential values are hidden.

Examples:
  augmem config list`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runList(configDir)
		},
	}
}

func runList(configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	printTarget(cfger.GetTarget())

	keys := config.ValidConfigKeys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	for _, key := range keys {
		value, err := cfger.GetConfigValue(key)
		if err != nil {
			return err
		}

		switch {
		case secretKeys[key] && value != "":
			value = "<hidden>"
		case value == "":
			value = "<not set>"
		default:
			value = fmt.Sprintf("%q", value)
		}
		fmt.Printf("  %-*s = %s\n", width, key, value)
	}
	fmt.Println()

	return nil
}
