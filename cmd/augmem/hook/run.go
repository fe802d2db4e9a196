package hookcmder

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/augmentcode/augmem/pkg/config"
	"github.com/augmentcode/augmem/pkg/dotdir"
	"github.com/augmentcode/augmem/pkg/hooks"
	"github.com/augmentcode/augmem/pkg/installer"
	"github.com/augmentcode/augmem/pkg/logger"
	"github.com/augmentcode/augmem/pkg/memory"
)

// runHook resolves settings, builds the memory client and runner, executes
// one hook against the stdin payload, and prints the result. The returned
// error is always nil; any failure degrades to the empty payload so the
// editor never sees a broken hook.
func runHook(cmd *cobra.Command, run func(ctx context.Context, r *hooks.Runner, in *hooks.Input) string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	configDir, _ := cmd.Flags().GetString("config-dir")

	log, closeLog := newHookLogger(debug)
	defer closeLog()

	settings, err := loadSettings(configDir)
	if err != nil {
		log.Warn("failed to load settings", zap.Error(err))
		fmt.Fprintln(cmd.OutOrStdout(), hooks.EmptyResult)
		return nil
	}

	client := memory.NewHTTPClient(memory.HTTPClientConfig{
		BaseURL:     settings.ServerURL,
		APIKey:      settings.APIKey,
		BearerToken: settings.BearerToken,
		Timeout:     settings.Timeout,
	})
	defer client.Close()

	in, err := hooks.ParseInput(cmd.InOrStdin())
	if err != nil {
		log.Warn("failed to decode hook input", zap.Error(err))
	}

	runner := hooks.NewRunner(settings, client, log)
	fmt.Fprintln(cmd.OutOrStdout(), run(cmd.Context(), runner, in))

	return nil
}

func loadSettings(configDir string) (*config.Settings, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	return config.LoadSettings(v), nil
}

// newHookLogger builds the hook logger writing to stderr and, best-effort,
// the hooks.log file next to the installed scripts. Stdout stays clean for
// the protocol payload.
func newHookLogger(debug bool) (*zap.Logger, func()) {
	writers := []io.Writer{os.Stderr}

	if home, err := dotdir.NewManager().Home(); err == nil {
		inst := installer.NewInstaller(home)
		if _, err := inst.HooksDir(); err == nil {
			logFile, err := os.OpenFile(inst.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				log := logger.NewWithWriters(debug, append(writers, logFile)...)
				return log, func() {
					_ = log.Sync()
					_ = logFile.Close()
				}
			}
		}
	}

	log := logger.NewWithWriters(debug, writers...)
	return log, func() { _ = log.Sync() }
}
