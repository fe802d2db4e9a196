// Package installcmder provides the install command that registers the
// augmem hook scripts with the Augment editor.
package installcmder

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/cliui"
	"github.com/augmentcode/augmem/pkg/dotdir"
	"github.com/augmentcode/augmem/pkg/installer"
)

const installLongDesc string = `Install the Augment editor hooks.

Writes shell wrappers for the SessionStart, Stop, and PostToolUse hooks
into the .augment/memory-hooks/ directory and registers them in the
editor's settings.json. Hooks that are already registered are left
untouched, so the command is safe to rerun.

The wrappers pin the absolute path of the current augmem binary. Use
--use-path to have them resolve augmem from PATH instead, for example
when the binary moves between upgrades.

Tool usage tracking is opt-in: the PostToolUse wrapper is always
written, but only registered with --enable-tool-tracking.

Examples:
  augmem install
  augmem install --enable-tool-tracking
  augmem install --use-path`

const installShortDesc string = "Install the Augment editor hooks"

func NewInstallCmd() *cobra.Command {
	var (
		enableToolTracking bool
		usePath            bool
		augmentDir         string
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: installShortDesc,
		Long:  installLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInstall(augmentDir, usePath, enableToolTracking)
		},
	}

	cmd.Flags().BoolVar(&enableToolTracking, "enable-tool-tracking", false, "Register the PostToolUse hook for tool usage tracking")
	cmd.Flags().BoolVar(&usePath, "use-path", false, "Resolve augmem from PATH instead of pinning the current binary")
	cmd.Flags().StringVar(&augmentDir, "augment-dir", "", "Install into this .augment directory instead of the home one")

	return cmd
}

func runInstall(augmentDir string, usePath, enableToolTracking bool) error {
	if augmentDir == "" {
		var err error
		augmentDir, err = dotdir.NewManager().Home()
		if err != nil {
			return fmt.Errorf("resolving .augment directory: %w", err)
		}
	}

	inst := installer.NewInstaller(augmentDir)

	fmt.Printf("\n  %s\n\n", cliui.HeaderStyle.Render("Installing Augment memory hooks"))

	var scripts map[string]string
	err := cliui.Step(os.Stdout, "Writing hook scripts", func() error {
		var stepErr error
		scripts, stepErr = inst.WriteHookScripts(usePath)
		return stepErr
	})
	if err != nil {
		return err
	}

	if err := cliui.Step(os.Stdout, "Registering hooks in settings.json", func() error {
		return inst.UpdateSettings(scripts, enableToolTracking)
	}); err != nil {
		return err
	}

	hooksDir, err := inst.HooksDir()
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s Hook scripts in %s\n", cliui.SuccessMark, cliui.ValueStyle.Render(hooksDir))
	fmt.Printf("  %s Registered in %s\n", cliui.SuccessMark, cliui.ValueStyle.Render(inst.SettingsPath()))
	if usePath {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("Wrappers resolve augmem from PATH."))
	} else if exe, exeErr := os.Executable(); exeErr == nil {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("Wrappers pin "+exe))
	}
	if !enableToolTracking {
		fmt.Printf("  %s PostToolUse not registered %s\n",
			cliui.DimStyle.Render("●"),
			cliui.DimStyle.Render("(rerun with --enable-tool-tracking to opt in)"))
	}

	fmt.Printf("\n  Point the hooks at your memory server:\n\n")
	fmt.Printf("    %s\n", cliui.NameStyle.Render("augmem config set server_url http://localhost:8000"))
	fmt.Printf("    %s\n", cliui.NameStyle.Render("augmem config set user_id <your-user-id>"))
	fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("AGENT_MEMORY_* environment variables override the config file."))

	return nil
}
