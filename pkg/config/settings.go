package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the effective runtime configuration the hooks and client run
// with, resolved through the viper precedence chain (flags > env > config
// file > defaults). Unlike Config it is fully materialized: no pointers,
// timeout as a duration, group-by split into fields.
type Settings struct {
	// Server connection
	ServerURL   string
	APIKey      string
	BearerToken string
	Timeout     time.Duration

	// Base namespace and user
	Namespace string
	UserID    string

	// Auto-capture and recall
	AutoCapture bool
	AutoRecall  bool

	// Recall settings
	MinScore    float64
	RecallLimit int

	// Extraction strategy
	ExtractionStrategy string
	CustomPrompt       string

	// Summary views
	SummaryViewName       string
	SummaryTimeWindowDays int
	SummaryGroupBy        []string

	// Workspace-based features
	UseWorkspaceNamespace  bool
	UsePersistentSession   bool
	CreateWorkspaceSummary bool
	CreateSessionSummary   bool

	// Tool usage tracking
	TrackToolUsage bool
}

// LoadSettings materializes Settings from a viper instance prepared by
// InitViper. Malformed numeric or boolean values fall back to defaults
// rather than erroring; hooks must come up with something usable no matter
// what the environment holds.
func LoadSettings(v *viper.Viper) *Settings {
	d := NewDefaultConfig()

	groupBy := ParseGroupBy(v.GetString("summary_group_by"))
	if len(groupBy) == 0 {
		groupBy = ParseGroupBy(d.SummaryGroupBy)
	}

	return &Settings{
		ServerURL:   v.GetString("server_url"),
		APIKey:      v.GetString("api_key"),
		BearerToken: v.GetString("bearer_token"),
		Timeout:     time.Duration(parseInt(v.GetString("timeout"), d.Timeout)) * time.Millisecond,

		Namespace: v.GetString("namespace"),
		UserID:    v.GetString("user_id"),

		AutoCapture: ParseBool(v.GetString("auto_capture"), *d.AutoCapture),
		AutoRecall:  ParseBool(v.GetString("auto_recall"), *d.AutoRecall),

		MinScore:    parseFloat(v.GetString("min_score"), d.MinScore),
		RecallLimit: parseInt(v.GetString("recall_limit"), d.RecallLimit),

		ExtractionStrategy: parseStrategy(v.GetString("extraction_strategy")),
		CustomPrompt:       v.GetString("custom_prompt"),

		SummaryViewName:       v.GetString("summary_view_name"),
		SummaryTimeWindowDays: parseInt(v.GetString("summary_time_window_days"), d.SummaryTimeWindowDays),
		SummaryGroupBy:        groupBy,

		UseWorkspaceNamespace:  ParseBool(v.GetString("use_workspace_namespace"), *d.UseWorkspaceNamespace),
		UsePersistentSession:   ParseBool(v.GetString("use_persistent_session"), *d.UsePersistentSession),
		CreateWorkspaceSummary: ParseBool(v.GetString("create_workspace_summary"), *d.CreateWorkspaceSummary),
		CreateSessionSummary:   ParseBool(v.GetString("create_session_summary"), *d.CreateSessionSummary),

		TrackToolUsage: ParseBool(v.GetString("track_tool_usage"), *d.TrackToolUsage),
	}
}

// ParseBool interprets value as a hook-environment boolean: any case variant
// of "true" is true, any other non-empty value is false. Empty means unset
// and yields the fallback.
func ParseBool(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	return strings.EqualFold(value, "true")
}

// ParseGroupBy splits a comma-separated group-by spec into its fields,
// dropping anything that is not a recognized partition field. An empty or
// fully invalid spec yields an empty slice.
func ParseGroupBy(value string) []string {
	fields := make([]string, 0, 3)
	for _, f := range strings.Split(value, ",") {
		f = strings.TrimSpace(f)
		if IsValidGroupByField(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

func parseStrategy(value string) string {
	if !IsValidStrategy(value) {
		return StrategyDiscrete
	}
	return value
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}
