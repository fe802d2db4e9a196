package config

const (
	defaultServerURL = "http://localhost:8000"
	defaultTimeout   = 30000

	defaultNamespace = "augment"

	defaultMinScore    = 0.3
	defaultRecallLimit = 5

	defaultExtractionStrategy = StrategyDiscrete

	defaultSummaryViewName       = "augment_user_summary"
	defaultSummaryTimeWindowDays = 30
	defaultSummaryGroupBy        = "user_id"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version:     CurrentV,
		ServerURL:   defaultServerURL,
		Timeout:     defaultTimeout,
		Namespace:   defaultNamespace,
		AutoCapture: newBool(true),
		AutoRecall:  newBool(true),
		MinScore:    defaultMinScore,
		RecallLimit: defaultRecallLimit,

		ExtractionStrategy: defaultExtractionStrategy,

		SummaryViewName:       defaultSummaryViewName,
		SummaryTimeWindowDays: defaultSummaryTimeWindowDays,
		SummaryGroupBy:        defaultSummaryGroupBy,

		UseWorkspaceNamespace:  newBool(true),
		UsePersistentSession:   newBool(true),
		CreateWorkspaceSummary: newBool(true),
		CreateSessionSummary:   newBool(true),

		TrackToolUsage: newBool(false),
	}
}

func newBool(v bool) *bool {
	return &v
}
