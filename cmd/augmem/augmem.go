// Package augmemcmder
package augmemcmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/augmentcode/augmem/cmd/augmem/auth"
	configcmder "github.com/augmentcode/augmem/cmd/augmem/config"
	hookcmder "github.com/augmentcode/augmem/cmd/augmem/hook"
	installcmder "github.com/augmentcode/augmem/cmd/augmem/install"
	logscmder "github.com/augmentcode/augmem/cmd/augmem/logs"
	recallcmder "github.com/augmentcode/augmem/cmd/augmem/recall"
	statuscmder "github.com/augmentcode/augmem/cmd/augmem/status"
	versioncmder "github.com/augmentcode/augmem/cmd/augmem/version"
)

const augmemLongDesc string = `Augmem connects the Augment editor to an agent memory server.

Get started using:
  augmem install       Register the lifecycle hooks with Augment
  augmem status        Inspect configuration, identity, and server health
  augmem recall        Preview the context a new session would receive`

const augmemShortDesc string = "Augmem - Augment Agent Memory"

func NewAugmemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "augmem",
		Short: augmemShortDesc,
		Long:  augmemLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .augment directory for configuration")

	// Add subcommands
	cmd.AddCommand(hookcmder.NewHookCmd())
	cmd.AddCommand(installcmder.NewInstallCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(recallcmder.NewRecallCmd())
	cmd.AddCommand(logscmder.NewLogsCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
