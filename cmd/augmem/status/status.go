// Package statuscmder provides the status command for inspecting the augmem
// setup: resolved settings, workspace identity, hook registration, and
// memory server reachability.
package statuscmder

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/cliui"
	"github.com/augmentcode/augmem/pkg/config"
	"github.com/augmentcode/augmem/pkg/dotdir"
	"github.com/augmentcode/augmem/pkg/installer"
	"github.com/augmentcode/augmem/pkg/memory"
	"github.com/augmentcode/augmem/pkg/workspace"
)

const statusLongDesc string = `Show the augmem setup status.

Displays the resolved settings, the memory identity of the current
workspace, which editor hooks are registered, and whether the memory
server is reachable.

Examples:
  augmem status`

const statusShortDesc string = "Show the augmem setup status"

// probeTimeout bounds the server reachability check.
const probeTimeout = 2 * time.Second

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runStatus(cmd.Context(), configDir)
		},
	}

	return cmd
}

func runStatus(ctx context.Context, configDir string) error {
	v, err := config.InitViper(configDir)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	settings := config.LoadSettings(v)

	printSettings(settings, v.ConfigFileUsed())
	printWorkspace(settings)

	home, err := dotdir.NewManager().Home()
	if err != nil {
		return fmt.Errorf("resolving .augment directory: %w", err)
	}
	if err := printHooks(installer.NewInstaller(home)); err != nil {
		return err
	}

	printServer(ctx, settings)

	return nil
}

// row prints one aligned key/value line.
func row(key, value string) {
	fmt.Printf("  %s  %s\n",
		cliui.KeyStyle.Render(fmt.Sprintf("%-20s", key)),
		cliui.ValueStyle.Render(value),
	)
}

func orUnset(value string) string {
	if value == "" {
		return "<not set>"
	}
	return value
}

func credentialSummary(settings *config.Settings) string {
	switch {
	case settings.BearerToken != "":
		return "bearer token"
	case settings.APIKey != "":
		return "API key"
	default:
		return "none"
	}
}

func printSettings(settings *config.Settings, configFile string) {
	fmt.Printf("\n  %s\n", cliui.HeaderStyle.Render("Settings"))
	if configFile != "" {
		fmt.Printf("  %s\n\n", cliui.DimStyle.Render(configFile))
	} else {
		fmt.Printf("  %s\n\n", cliui.DimStyle.Render("no config file, defaults and environment only"))
	}

	row("server_url", settings.ServerURL)
	row("credentials", credentialSummary(settings))
	row("namespace", settings.Namespace)
	row("user_id", orUnset(settings.UserID))
	row("auto_recall", strconv.FormatBool(settings.AutoRecall))
	row("auto_capture", strconv.FormatBool(settings.AutoCapture))
	row("track_tool_usage", strconv.FormatBool(settings.TrackToolUsage))
	row("extraction_strategy", settings.ExtractionStrategy)
	row("recall_limit", strconv.Itoa(settings.RecallLimit))
	row("min_score", strconv.FormatFloat(settings.MinScore, 'g', -1, 64))
}

func printWorkspace(settings *config.Settings) {
	root := workspace.Root(nil)
	if root == "" {
		return
	}

	namespace := settings.Namespace
	if settings.UseWorkspaceNamespace {
		namespace = workspace.Namespace(settings.Namespace, root)
	}

	fmt.Printf("\n  %s\n\n", cliui.HeaderStyle.Render("Workspace"))
	row("root", root)
	row("namespace", namespace)
	if settings.UsePersistentSession {
		row("session_id", workspace.SessionID(root, ""))
	}
	row("summary_view", workspace.SummaryViewName(root))
}

func printHooks(inst *installer.Installer) error {
	events, err := inst.InstalledEvents()
	if err != nil {
		return fmt.Errorf("reading editor settings: %w", err)
	}

	fmt.Printf("\n  %s\n", cliui.HeaderStyle.Render("Hooks"))
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render(inst.SettingsPath()))

	registered := 0
	for _, event := range []string{installer.EventSessionStart, installer.EventStop, installer.EventPostToolUse} {
		if events[event] {
			fmt.Printf("  %s %s\n", cliui.SuccessMark, event)
			registered++
		} else {
			fmt.Printf("  %s %s %s\n",
				cliui.DimStyle.Render("●"), event, cliui.DimStyle.Render("(not registered)"))
		}
	}

	if registered == 0 {
		fmt.Printf("\n  %s Run 'augmem install' to register the hooks.\n", cliui.WarnStyle.Render("!"))
	}

	return nil
}

func printServer(ctx context.Context, settings *config.Settings) {
	fmt.Printf("\n  %s\n\n", cliui.HeaderStyle.Render("Server"))

	client := memory.NewHTTPClient(memory.HTTPClientConfig{
		BaseURL:     settings.ServerURL,
		APIKey:      settings.APIKey,
		BearerToken: settings.BearerToken,
		Timeout:     probeTimeout,
	})
	defer client.Close()

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := client.Ping(probeCtx); err != nil {
		fmt.Printf("  %s %s %s\n\n",
			cliui.FailMark, settings.ServerURL, cliui.DimStyle.Render("unreachable"))
		return
	}
	fmt.Printf("  %s %s %s\n\n",
		cliui.SuccessMark, settings.ServerURL, cliui.DimStyle.Render("reachable"))
}
