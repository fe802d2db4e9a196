// Package logscmder provides the logs command for viewing hook diagnostics.
package logscmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/augmentcode/augmem/pkg/dotdir"
	"github.com/augmentcode/augmem/pkg/installer"
)

const logsLongDesc string = `Show the hook log.

Hook stdout belongs to the Augment editor, so the hooks append their
diagnostics to memory-hooks/hooks.log in the home .augment/ directory
instead. This command prints that log; --follow streams new entries as
hooks run.

Examples:
  augmem logs
  augmem logs --follow`

const logsShortDesc string = "Show the hook log"

func NewLogsCmd() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: logsShortDesc,
		Long:  logsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd.Context(), cmd.OutOrStdout(), follow)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream new log entries as hooks run")

	return cmd
}

func runLogs(ctx context.Context, out io.Writer, follow bool) error {
	home, err := dotdir.NewManager().Home()
	if err != nil {
		return fmt.Errorf("resolving .augment directory: %w", err)
	}
	logPath := installer.NewInstaller(home).LogFile()

	if _, err := os.Stat(logPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if follow {
				return errors.New("no hook logs found")
			}
			fmt.Fprintf(out, "No hook logs at %s. The log appears once a hook has run.\n", logPath)
			return nil
		}
		return fmt.Errorf("checking log file: %w", err)
	}

	if follow {
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := followLog(ctx, logPath, out); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(out, file); err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}

	return nil
}

// followLog seeks to the end of the log and streams everything appended
// afterwards until the context is canceled.
func followLog(ctx context.Context, path string, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer file.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating log watcher: %w", err)
	}
	defer watcher.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}

	if _, err := file.Seek(stat.Size(), io.SeekStart); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching log dir: %w", err)
	}

	buf := make([]byte, 4096)
	readAvailable := func() error {
		for {
			n, err := file.Read(buf)
			if n > 0 {
				if _, writeErr := out.Write(buf[:n]); writeErr != nil {
					return writeErr
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}

	if err := readAvailable(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := readAvailable(); err != nil {
				return err
			}
		case err := <-watcher.Errors:
			return fmt.Errorf("log watcher error: %w", err)
		}
	}
}
