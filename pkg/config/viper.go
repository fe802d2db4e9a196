package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/augmentcode/augmem/pkg/dotdir"
)

// InitViper builds the viper instance the commands read settings from.
// Defaults come from NewDefaultConfig, a config.toml found via dotdir
// resolution overrides them, and AGENT_MEMORY_* environment variables
// override the file. CLI flags sit on top once BindRegisteredFlags runs.
func InitViper(configDir string) (*viper.Viper, error) {
	target, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	v := viper.New()
	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config.toml is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("AGENT_MEMORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults mirrors NewDefaultConfig into viper. Keys are flat so each
// one maps directly onto its AGENT_MEMORY_* variable, and defaults.go stays
// the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Server connection
	v.SetDefault("server_url", d.ServerURL)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("bearer_token", d.BearerToken)
	v.SetDefault("timeout", d.Timeout)

	// Base namespace and user
	v.SetDefault("namespace", d.Namespace)
	v.SetDefault("user_id", d.UserID)

	// Auto-capture and recall
	v.SetDefault("auto_capture", *d.AutoCapture)
	v.SetDefault("auto_recall", *d.AutoRecall)

	// Recall settings
	v.SetDefault("min_score", d.MinScore)
	v.SetDefault("recall_limit", d.RecallLimit)

	// Extraction strategy
	v.SetDefault("extraction_strategy", d.ExtractionStrategy)
	v.SetDefault("custom_prompt", d.CustomPrompt)

	// Summary views
	v.SetDefault("summary_view_name", d.SummaryViewName)
	v.SetDefault("summary_time_window_days", d.SummaryTimeWindowDays)
	v.SetDefault("summary_group_by", d.SummaryGroupBy)

	// Workspace-based features
	v.SetDefault("use_workspace_namespace", *d.UseWorkspaceNamespace)
	v.SetDefault("use_persistent_session", *d.UsePersistentSession)
	v.SetDefault("create_workspace_summary", *d.CreateWorkspaceSummary)
	v.SetDefault("create_session_summary", *d.CreateSessionSummary)

	// Tool usage tracking
	v.SetDefault("track_tool_usage", *d.TrackToolUsage)
}
