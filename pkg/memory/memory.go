// Package memory provides the client surface for an agent memory server.
//
// The server holds three kinds of state the hooks interact with: per-session
// working-memory threads (raw conversation turns awaiting extraction),
// long-term memories (distilled facts the server extracts in the background),
// and summary views (server-side rollups over long-term memories, partitioned
// by group-by fields such as namespace or session).
//
// The [Client] interface is intentionally thin: it mirrors the handful of
// REST endpoints the hooks consume and nothing more. Extraction scheduling,
// summarization, and eviction are entirely the server's business.
//
// Clients never retry. Hooks run inside an interactive session and a slow
// memory server must never block the host; callers give up after one attempt
// inside the configured timeout.
package memory

import "context"

// Client talks to an agent memory server. The hooks treat every method as
// best-effort; implementations must not retry or block beyond their
// configured timeout.
type Client interface {
	// GetSummaryView looks up a summary view by name.
	// Returns (nil, nil) when no view with that name exists.
	GetSummaryView(ctx context.Context, name string) (*SummaryView, error)

	// CreateSummaryView registers a new summary view and returns it with
	// its server-assigned ID.
	CreateSummaryView(ctx context.Context, req CreateSummaryViewRequest) (*SummaryView, error)

	// RunSummaryView starts an async refresh of every partition of the view.
	// Returns the server-side task ID.
	RunSummaryView(ctx context.Context, viewID string) (string, error)

	// RunSummaryViewPartition computes the summary for one concrete
	// partition of the named view. The group maps each of the view's
	// group-by fields to a value.
	RunSummaryViewPartition(ctx context.Context, viewName string, group map[string]string) (*PartitionResult, error)

	// PutWorkingMemory stores the working memory for a session, replacing
	// or extending the thread the server holds for that session ID.
	PutWorkingMemory(ctx context.Context, sessionID string, wm *WorkingMemory) error

	// AppendMessages appends messages to a session's working memory,
	// creating the thread if it does not exist yet.
	AppendMessages(ctx context.Context, sessionID, namespace, userID string, msgs []Message) error

	// SearchLongTermMemory runs a semantic search over extracted
	// long-term memories.
	SearchLongTermMemory(ctx context.Context, req SearchRequest) (*SearchResults, error)

	// Ping checks that the server is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the client.
	Close() error
}
