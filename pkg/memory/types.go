package memory

import "time"

// Message roles stored in working memory.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// SourceLongTerm is the only summary view source the hooks create views over.
const SourceLongTerm = "long_term"

// Message is a single conversation message in a working-memory thread.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// StrategyConfig selects how the server extracts long-term memories from a
// working-memory thread.
type StrategyConfig struct {
	Strategy     string `json:"strategy"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// WorkingMemory is the per-session message buffer the server runs long-term
// extraction over. Turns appended under the same session ID build up one
// conversation thread.
type WorkingMemory struct {
	SessionID              string          `json:"session_id"`
	Namespace              string          `json:"namespace,omitempty"`
	UserID                 string          `json:"user_id,omitempty"`
	Messages               []Message       `json:"messages"`
	LongTermMemoryStrategy *StrategyConfig `json:"long_term_memory_strategy,omitempty"`
}

// SummaryView is a server-side rollup over long-term memories, partitioned
// by its group-by fields.
type SummaryView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Source  string   `json:"source"`
	GroupBy []string `json:"group_by"`
}

// CreateSummaryViewRequest registers a new summary view.
type CreateSummaryViewRequest struct {
	Name    string   `json:"name"`
	Source  string   `json:"source"`
	GroupBy []string `json:"group_by"`
}

// PartitionResult is the computed summary for one partition of a view.
type PartitionResult struct {
	Summary     string `json:"summary"`
	MemoryCount int    `json:"memory_count"`
}

// EqFilter matches records whose field equals the value exactly.
type EqFilter struct {
	Eq string `json:"eq"`
}

// TimeFilter bounds records by creation time.
type TimeFilter struct {
	Gte time.Time `json:"gte"`
}

// SearchRequest is a semantic query over long-term memories. Nil filters
// are omitted from the request entirely.
type SearchRequest struct {
	Text              string      `json:"text"`
	Namespace         *EqFilter   `json:"namespace,omitempty"`
	UserID            *EqFilter   `json:"user_id,omitempty"`
	CreatedAt         *TimeFilter `json:"created_at,omitempty"`
	Limit             int         `json:"limit,omitempty"`
	DistanceThreshold float64     `json:"distance_threshold"`
}

// MemoryRecord is one long-term memory returned by search.
type MemoryRecord struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	Dist      float64   `json:"dist,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchResults is the outcome of a long-term memory search.
type SearchResults struct {
	Memories []MemoryRecord `json:"memories"`
	Total    int            `json:"total"`
}
