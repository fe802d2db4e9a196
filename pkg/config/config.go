package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/augmentcode/augmem/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// v0 is the initial config schema.
	v0 = 0

	// CurrentV is the schema version this build reads and writes.
	CurrentV = v0
)

// keyOrder lists every supported key in config-file layout order. list and
// completion output follow this order.
var keyOrder = []string{
	"server_url",
	"api_key",
	"bearer_token",
	"timeout",
	"namespace",
	"user_id",
	"auto_capture",
	"auto_recall",
	"min_score",
	"recall_limit",
	"extraction_strategy",
	"custom_prompt",
	"summary_view_name",
	"summary_time_window_days",
	"summary_group_by",
	"use_workspace_namespace",
	"use_persistent_session",
	"create_workspace_summary",
	"create_session_summary",
	"track_tool_usage",
}

// Configer reads and writes config.toml in the resolved .augment/ directory.
type Configer struct {
	ddm        *dotdir.Manager
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	ddm := dotdir.NewManager()
	target, err := ddm.Target(override)
	if err != nil {
		return nil, err
	}

	c := &Configer{ddm: ddm}

	// Without a resolved .augment/ directory, LoadConfig serves defaults
	// and SaveConfig reports the missing target.
	if target == "" {
		return c, nil
	}

	c.targetPath = filepath.Join(target, configFile)
	if _, err := os.Stat(c.targetPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("probing %s: %w", c.targetPath, err)
	}

	return c, nil
}

// ValidConfigKeys returns all supported configuration key names in a stable
// order: keyOrder first, then any stragglers from the key table sorted by
// name.
func ValidConfigKeys() []string {
	result := make([]string, 0, len(configKeys))
	for _, k := range keyOrder {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
		}
	}

	if len(result) == len(configKeys) {
		return result
	}

	listed := make(map[string]bool, len(result))
	for _, k := range result {
		listed[k] = true
	}

	rest := make([]string, 0, len(configKeys)-len(result))
	for k := range configKeys {
		if !listed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(result, rest...)
}

// IsValidConfigKey reports whether key names a supported config entry.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// lookupKey resolves a user-facing key name against the key table.
func lookupKey(key string) (configKeyInfo, error) {
	info, ok := configKeys[key]
	if !ok {
		return configKeyInfo{}, fmt.Errorf("unknown config key: %q", key)
	}
	return info, nil
}

// LoadConfig reads config.toml from the target .augment/ directory. A missing
// file (or no directory at all) yields NewDefaultConfig(), so callers always
// get a fully populated Config; fields present in the file win over defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.targetPath, err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	return cfg, nil
}

// fill replaces a zero value with its default. For the *bool fields zero is
// nil, which keeps an explicit false from the file intact.
func fill[T comparable](dst *T, def T) {
	var zero T
	if *dst == zero {
		*dst = def
	}
}

// applyDefaults completes unset fields with NewDefaultConfig() values.
func applyDefaults(cfg *Config) {
	d := NewDefaultConfig()

	fill(&cfg.Version, d.Version)
	fill(&cfg.ServerURL, d.ServerURL)
	fill(&cfg.Timeout, d.Timeout)
	fill(&cfg.Namespace, d.Namespace)
	fill(&cfg.AutoCapture, d.AutoCapture)
	fill(&cfg.AutoRecall, d.AutoRecall)
	fill(&cfg.MinScore, d.MinScore)
	fill(&cfg.RecallLimit, d.RecallLimit)
	fill(&cfg.ExtractionStrategy, d.ExtractionStrategy)
	fill(&cfg.SummaryViewName, d.SummaryViewName)
	fill(&cfg.SummaryTimeWindowDays, d.SummaryTimeWindowDays)
	fill(&cfg.SummaryGroupBy, d.SummaryGroupBy)
	fill(&cfg.UseWorkspaceNamespace, d.UseWorkspaceNamespace)
	fill(&cfg.UsePersistentSession, d.UsePersistentSession)
	fill(&cfg.CreateWorkspaceSummary, d.CreateWorkspaceSummary)
	fill(&cfg.CreateSessionSummary, d.CreateSessionSummary)
	fill(&cfg.TrackToolUsage, d.TrackToolUsage)
}

// SaveConfig writes the configuration to config.toml, mode 0600.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}
	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", c.targetPath, err)
	}

	return nil
}

// SetConfigValue validates and sets one key, then persists the whole file.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, cfg, err := c.resolve(key)
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue returns the string form of one key from the loaded config.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, cfg, err := c.resolve(key)
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}

// resolve validates the key against the key table and loads the config it
// will be read from or written to.
func (c *Configer) resolve(key string) (configKeyInfo, *Config, error) {
	info, err := lookupKey(key)
	if err != nil {
		return configKeyInfo{}, nil, err
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return configKeyInfo{}, nil, err
	}

	return info, cfg, nil
}

// ParseConfigTOML decodes raw TOML into a Config, rejecting files written by
// an unknown schema version.
func ParseConfigTOML(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}

	if cfg.Version != 0 && cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}

	return &cfg, nil
}
