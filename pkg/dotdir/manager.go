// Package dotdir locates the .augment/ directory.
//
// The Augment editor keeps its settings.json in ~/.augment; augmem stores its
// own config.toml and the memory-hooks/ script directory alongside it. A local
// ./.augment directory takes precedence so a repository can carry per-project
// memory configuration.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// dirName is the name of the augment directory.
const dirName = ".augment"

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target resolves the .augment/ directory to use, creating it when missing.
// Precedence: the explicit override, then ./.augment in the working directory,
// then ~/.augment.
func (m *Manager) Target(overrideDir string) (string, error) {
	dir := overrideDir

	if dir == "" {
		dir = localDir()
	}

	if dir == "" {
		var err error
		if dir, err = homePath(); err != nil {
			return "", err
		}
	}

	if err := mkdir(dir); err != nil {
		return "", err
	}

	return filepath.Abs(dir)
}

// Home returns ~/.augment without consulting the local override, creating it
// when missing. The installer targets this directory: hook registrations in
// settings.json must resolve regardless of where the editor was launched.
func (m *Manager) Home() (string, error) {
	dir, err := homePath()
	if err != nil {
		return "", err
	}

	if err := mkdir(dir); err != nil {
		return "", err
	}

	return dir, nil
}

// localDir returns ./.augment when the working directory carries one, else "".
func localDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := filepath.Join(cwd, dirName)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}

	return dir
}

func homePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, dirName), nil
}

func mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating augment directory %s: %w", dir, err)
	}

	return nil
}
