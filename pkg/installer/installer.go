// Package installer registers the augmem hooks with the Augment editor. It
// writes wrapper scripts under .augment/memory-hooks/ and merges matching
// entries into .augment/settings.json, preserving whatever else lives there.
package installer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// binaryName is the PATH-resolved command the scripts call with --use-path.
	binaryName = "augmem"

	hooksDirName = "memory-hooks"
	settingsFile = "settings.json"
	logFileName  = "hooks.log"
)

// Hook event names as they appear in the settings.json hooks object.
const (
	EventSessionStart = "SessionStart"
	EventStop         = "Stop"
	EventPostToolUse  = "PostToolUse"
)

// hookScripts describes the wrapper script written for each event. The label
// goes into the script's comment line and the subcommand into its exec line.
var hookScripts = []struct {
	event      string
	file       string
	label      string
	subcommand string
}{
	{EventSessionStart, "session_start.sh", "SessionStart Hook", "session-start"},
	{EventStop, "stop.sh", "Stop Hook", "stop"},
	{EventPostToolUse, "post_tool_use.sh", "PostToolUse Hook (tool tracking)", "post-tool-use"},
}

// Installer writes hook scripts into an Augment directory and registers them
// in its settings.json. Running it repeatedly is safe: scripts are rewritten
// in place and settings entries are never duplicated.
type Installer struct {
	augmentDir string
}

func NewInstaller(augmentDir string) *Installer {
	return &Installer{augmentDir: augmentDir}
}

// SettingsPath returns the settings.json path inside the Augment directory.
func (i *Installer) SettingsPath() string {
	return filepath.Join(i.augmentDir, settingsFile)
}

// HooksDir returns the directory holding the wrapper scripts and the hook
// log, creating it when missing.
func (i *Installer) HooksDir() (string, error) {
	dir := filepath.Join(i.augmentDir, hooksDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating hooks directory %s: %w", dir, err)
	}

	return dir, nil
}

// LogFile returns the path the hook commands append their log to.
func (i *Installer) LogFile() string {
	return filepath.Join(i.augmentDir, hooksDirName, logFileName)
}

// WriteHookScripts writes the three wrapper scripts the editor invokes and
// returns the event-to-script-path map consumed by UpdateSettings. By default
// each script pins the absolute path of the running executable; with usePath
// it calls the bare binary name and relies on PATH instead.
func (i *Installer) WriteHookScripts(usePath bool) (map[string]string, error) {
	dir, err := i.HooksDir()
	if err != nil {
		return nil, err
	}

	command := binaryName
	if !usePath {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolving executable path: %w", err)
		}
		command = exe
	}

	scripts := make(map[string]string, len(hookScripts))
	for _, s := range hookScripts {
		path := filepath.Join(dir, s.file)
		content := fmt.Sprintf("#!/bin/bash\n# Augment Memory - %s\nexec %s hook %s\n", s.label, command, s.subcommand)

		if err := os.WriteFile(path, []byte(content), 0o755); err != nil { //nolint:gosec // hook scripts must be executable
			return nil, fmt.Errorf("writing hook script %s: %w", path, err)
		}
		// WriteFile keeps the existing mode when the file is rewritten.
		if err := os.Chmod(path, 0o755); err != nil {
			return nil, fmt.Errorf("marking hook script %s executable: %w", path, err)
		}

		scripts[s.event] = path
	}

	return scripts, nil
}

// UpdateSettings merges hook registrations for the given scripts into
// settings.json. The file is read as a generic JSON object (created along
// with its parent directory when absent) so every unrelated key survives the
// rewrite. A script already registered, whether under the legacy top-level
// path field or a nested hooks[].command, is skipped rather than duplicated.
// The PostToolUse registration is only written when tool tracking is enabled.
func (i *Installer) UpdateSettings(scripts map[string]string, enableToolTracking bool) error {
	path := i.SettingsPath()

	settings := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating augment directory %s: %w", filepath.Dir(path), err)
		}
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}

	hooks := ensureMap(settings, "hooks")

	addHook(hooks, EventSessionStart, scripts[EventSessionStart], map[string]any{
		"hooks": []any{
			map[string]any{
				"type":    "command",
				"command": scripts[EventSessionStart],
				"timeout": 10000,
			},
		},
	})

	addHook(hooks, EventStop, scripts[EventStop], map[string]any{
		"hooks": []any{
			map[string]any{
				"type":    "command",
				"command": scripts[EventStop],
				"timeout": 10000,
			},
		},
		"metadata": map[string]any{
			"includeConversationData": true,
		},
	})

	if enableToolTracking {
		addHook(hooks, EventPostToolUse, scripts[EventPostToolUse], map[string]any{
			"matcher": ".*",
			"hooks": []any{
				map[string]any{
					"type":    "command",
					"command": scripts[EventPostToolUse],
					"timeout": 5000,
				},
			},
		})
	}

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// InstalledEvents reports, per hook event, whether settings.json references a
// script inside the managed hooks directory. A missing settings file reports
// every event uninstalled.
func (i *Installer) InstalledEvents() (map[string]bool, error) {
	installed := map[string]bool{
		EventSessionStart: false,
		EventStop:         false,
		EventPostToolUse:  false,
	}

	path := i.SettingsPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return installed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	settings := map[string]any{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Join(i.augmentDir, hooksDirName)
	hooks, _ := settings["hooks"].(map[string]any)
	for event := range installed {
		entries, _ := hooks[event].([]any)
		installed[event] = registered(entries, func(script string) bool {
			return filepath.Dir(script) == dir
		})
	}

	return installed, nil
}

// addHook appends config to the event's entry list unless match finds the
// script already registered.
func addHook(hooks map[string]any, event, script string, config map[string]any) {
	entries, _ := hooks[event].([]any)
	if registered(entries, func(existing string) bool { return existing == script }) {
		return
	}

	hooks[event] = append(entries, config)
}

// registered walks the entries of one event, checking the legacy top-level
// path field and every nested hooks[].command against match.
func registered(entries []any, match func(string) bool) bool {
	for _, entry := range entries {
		cast, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if script, ok := cast["path"].(string); ok && match(script) {
			return true
		}

		nested, _ := cast["hooks"].([]any)
		for _, h := range nested {
			if hook, ok := h.(map[string]any); ok {
				if command, ok := hook["command"].(string); ok && match(command) {
					return true
				}
			}
		}
	}

	return false
}

func ensureMap(target map[string]any, key string) map[string]any {
	value, ok := target[key]
	if ok {
		if cast, ok := value.(map[string]any); ok {
			return cast
		}
	}

	newMap := map[string]any{}
	target[key] = newMap
	return newMap
}
