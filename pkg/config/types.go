package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Extraction strategies the memory server accepts for long-term storage.
const (
	StrategyDiscrete    = "discrete"
	StrategySummary     = "summary"
	StrategyPreferences = "preferences"
	StrategyCustom      = "custom"
)

// ValidStrategies returns the recognized extraction strategy names.
func ValidStrategies() []string {
	return []string{StrategyDiscrete, StrategySummary, StrategyPreferences, StrategyCustom}
}

// IsValidStrategy returns true if s names a recognized extraction strategy.
func IsValidStrategy(s string) bool {
	switch s {
	case StrategyDiscrete, StrategySummary, StrategyPreferences, StrategyCustom:
		return true
	}
	return false
}

// Fields a summary view may partition on.
const (
	GroupByUserID    = "user_id"
	GroupByNamespace = "namespace"
	GroupBySessionID = "session_id"
)

// ValidGroupByFields returns the field names a summary view may group by.
func ValidGroupByFields() []string {
	return []string{GroupByUserID, GroupByNamespace, GroupBySessionID}
}

// IsValidGroupByField returns true if f names a recognized group-by field.
func IsValidGroupByField(f string) bool {
	switch f {
	case GroupByUserID, GroupByNamespace, GroupBySessionID:
		return true
	}
	return false
}

// Config represents the persistent augmem configuration stored as config.toml
// in the .augment/ directory. Keys are flat so each one lines up with its
// AGENT_MEMORY_* environment variable.
//
// Boolean fields are pointers so an explicit `auto_capture = false` in the
// file survives default merging; nil means unset.
type Config struct {
	Version int `toml:"version"`

	// Server connection
	ServerURL   string `toml:"server_url,omitempty"`
	APIKey      string `toml:"api_key,omitempty"`
	BearerToken string `toml:"bearer_token,omitempty"`
	Timeout     int    `toml:"timeout,omitempty"`

	// Base namespace and user
	Namespace string `toml:"namespace,omitempty"`
	UserID    string `toml:"user_id,omitempty"`

	// Auto-capture and recall
	AutoCapture *bool `toml:"auto_capture,omitempty"`
	AutoRecall  *bool `toml:"auto_recall,omitempty"`

	// Recall settings
	MinScore    float64 `toml:"min_score,omitempty"`
	RecallLimit int     `toml:"recall_limit,omitempty"`

	// Extraction strategy
	ExtractionStrategy string `toml:"extraction_strategy,omitempty"`
	CustomPrompt       string `toml:"custom_prompt,omitempty"`

	// Summary views
	SummaryViewName       string `toml:"summary_view_name,omitempty"`
	SummaryTimeWindowDays int    `toml:"summary_time_window_days,omitempty"`
	SummaryGroupBy        string `toml:"summary_group_by,omitempty"`

	// Workspace-based features
	UseWorkspaceNamespace  *bool `toml:"use_workspace_namespace,omitempty"`
	UsePersistentSession   *bool `toml:"use_persistent_session,omitempty"`
	CreateWorkspaceSummary *bool `toml:"create_workspace_summary,omitempty"`
	CreateSessionSummary   *bool `toml:"create_session_summary,omitempty"`

	// Tool usage tracking
	TrackToolUsage *bool `toml:"track_tool_usage,omitempty"`
}

// configKeyInfo maps a user-facing key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func setBool(key string, target **bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*target = &b
	return nil
}

// configKeys is the authoritative map of all supported config keys.
// Key names match the TOML keys and the AGENT_MEMORY_* environment suffixes.
var configKeys = map[string]configKeyInfo{
	"server_url": {
		get: func(c *Config) string { return c.ServerURL },
		set: func(c *Config, v string) error { c.ServerURL = v; return nil },
	},
	"api_key": {
		get: func(c *Config) string { return c.APIKey },
		set: func(c *Config, v string) error { c.APIKey = v; return nil },
	},
	"bearer_token": {
		get: func(c *Config) string { return c.BearerToken },
		set: func(c *Config, v string) error { c.BearerToken = v; return nil },
	},
	"timeout": {
		get: func(c *Config) string {
			if c.Timeout == 0 {
				return ""
			}
			return strconv.Itoa(c.Timeout)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for timeout: %w", err)
			}
			if n <= 0 {
				return fmt.Errorf("timeout must be a positive number of milliseconds, got %d", n)
			}
			c.Timeout = n
			return nil
		},
	},
	"namespace": {
		get: func(c *Config) string { return c.Namespace },
		set: func(c *Config, v string) error { c.Namespace = v; return nil },
	},
	"user_id": {
		get: func(c *Config) string { return c.UserID },
		set: func(c *Config, v string) error { c.UserID = v; return nil },
	},
	"auto_capture": {
		get: func(c *Config) string { return formatBool(c.AutoCapture) },
		set: func(c *Config, v string) error { return setBool("auto_capture", &c.AutoCapture, v) },
	},
	"auto_recall": {
		get: func(c *Config) string { return formatBool(c.AutoRecall) },
		set: func(c *Config, v string) error { return setBool("auto_recall", &c.AutoRecall, v) },
	},
	"min_score": {
		get: func(c *Config) string {
			if c.MinScore == 0 {
				return ""
			}
			return strconv.FormatFloat(c.MinScore, 'g', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for min_score: %w", err)
			}
			if f < 0 || f > 1 {
				return fmt.Errorf("min_score must be between 0 and 1, got %g", f)
			}
			c.MinScore = f
			return nil
		},
	},
	"recall_limit": {
		get: func(c *Config) string {
			if c.RecallLimit == 0 {
				return ""
			}
			return strconv.Itoa(c.RecallLimit)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for recall_limit: %w", err)
			}
			if n <= 0 {
				return fmt.Errorf("recall_limit must be positive, got %d", n)
			}
			c.RecallLimit = n
			return nil
		},
	},
	"extraction_strategy": {
		get: func(c *Config) string { return c.ExtractionStrategy },
		set: func(c *Config, v string) error {
			if !IsValidStrategy(v) {
				return fmt.Errorf("invalid extraction strategy %q (available: %s)",
					v, strings.Join(ValidStrategies(), ", "))
			}
			c.ExtractionStrategy = v
			return nil
		},
	},
	"custom_prompt": {
		get: func(c *Config) string { return c.CustomPrompt },
		set: func(c *Config, v string) error { c.CustomPrompt = v; return nil },
	},
	"summary_view_name": {
		get: func(c *Config) string { return c.SummaryViewName },
		set: func(c *Config, v string) error { c.SummaryViewName = v; return nil },
	},
	"summary_time_window_days": {
		get: func(c *Config) string {
			if c.SummaryTimeWindowDays == 0 {
				return ""
			}
			return strconv.Itoa(c.SummaryTimeWindowDays)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for summary_time_window_days: %w", err)
			}
			if n <= 0 {
				return fmt.Errorf("summary_time_window_days must be positive, got %d", n)
			}
			c.SummaryTimeWindowDays = n
			return nil
		},
	},
	"summary_group_by": {
		get: func(c *Config) string { return c.SummaryGroupBy },
		set: func(c *Config, v string) error {
			for _, f := range strings.Split(v, ",") {
				f = strings.TrimSpace(f)
				if f == "" {
					continue
				}
				if !IsValidGroupByField(f) {
					return fmt.Errorf("invalid group-by field %q (available: %s)",
						f, strings.Join(ValidGroupByFields(), ", "))
				}
			}
			c.SummaryGroupBy = v
			return nil
		},
	},
	"use_workspace_namespace": {
		get: func(c *Config) string { return formatBool(c.UseWorkspaceNamespace) },
		set: func(c *Config, v string) error {
			return setBool("use_workspace_namespace", &c.UseWorkspaceNamespace, v)
		},
	},
	"use_persistent_session": {
		get: func(c *Config) string { return formatBool(c.UsePersistentSession) },
		set: func(c *Config, v string) error {
			return setBool("use_persistent_session", &c.UsePersistentSession, v)
		},
	},
	"create_workspace_summary": {
		get: func(c *Config) string { return formatBool(c.CreateWorkspaceSummary) },
		set: func(c *Config, v string) error {
			return setBool("create_workspace_summary", &c.CreateWorkspaceSummary, v)
		},
	},
	"create_session_summary": {
		get: func(c *Config) string { return formatBool(c.CreateSessionSummary) },
		set: func(c *Config, v string) error {
			return setBool("create_session_summary", &c.CreateSessionSummary, v)
		},
	},
	"track_tool_usage": {
		get: func(c *Config) string { return formatBool(c.TrackToolUsage) },
		set: func(c *Config, v string) error { return setBool("track_tool_usage", &c.TrackToolUsage, v) },
	},
}
