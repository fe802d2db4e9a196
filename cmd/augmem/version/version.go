// Package versioncmder provides the version command.
package versioncmder

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the augmem version",
		Long:  "Show the version, commit, and build time of this binary.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nSha: %s\nBuilt at: %s\n", Version, Sha, Buildtime)
		},
	}
}
