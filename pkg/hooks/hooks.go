// Package hooks implements the Augment lifecycle hook orchestrators.
//
// Each hook reads one JSON object from standard input, consults the resolved
// settings, makes a short fixed sequence of memory server calls, and writes
// exactly one value to standard output: either "{}" (no contribution) or, for
// session start, a markdown context block. Failures never reach the host
// assistant: every remote error is logged and collapsed into the empty
// result, and hook processes exit zero regardless.
package hooks

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/augmentcode/augmem/pkg/config"
	"github.com/augmentcode/augmem/pkg/memory"
	"github.com/augmentcode/augmem/pkg/workspace"
)

const (
	// EmptyResult is the stdout sentinel for "no contribution".
	EmptyResult = "{}"

	// DefaultRecallQuery is the search text used at session start, when no
	// user prompt is available yet.
	DefaultRecallQuery = "recent conversation context and user preferences"
)

// Runner executes the hook orchestrations against a memory client.
type Runner struct {
	settings *config.Settings
	client   memory.Client
	log      *zap.Logger
}

// NewRunner creates a Runner. A nil logger is replaced with a no-op logger.
func NewRunner(settings *config.Settings, client memory.Client, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{
		settings: settings,
		client:   client,
		log:      log,
	}
}

// deriveIdentity resolves the workspace root, namespace, and persistent
// session ID for one hook invocation. The session ID is empty when
// persistent sessions are disabled or no root resolves; callers substitute
// their own fallback.
func (r *Runner) deriveIdentity(in *Input) (root, namespace, sessionID string) {
	root = workspace.Root(in.WorkspaceRoots)

	namespace = r.settings.Namespace
	if r.settings.UseWorkspaceNamespace && root != "" {
		namespace = workspace.Namespace(r.settings.Namespace, root)
	}

	if r.settings.UsePersistentSession && root != "" {
		sessionID = workspace.SessionID(root, in.ConversationID)
	}

	return root, namespace, sessionID
}

// ensureSummaryView returns the ID of the named summary view, creating the
// view when it does not exist yet.
func (r *Runner) ensureSummaryView(ctx context.Context, name string, groupBy []string) (string, error) {
	view, err := r.client.GetSummaryView(ctx, name)
	if err != nil {
		return "", fmt.Errorf("looking up summary view %s: %w", name, err)
	}
	if view != nil {
		r.log.Debug("summary view exists", zap.String("view", name), zap.String("id", view.ID))
		return view.ID, nil
	}

	r.log.Info("creating summary view", zap.String("view", name))
	created, err := r.client.CreateSummaryView(ctx, memory.CreateSummaryViewRequest{
		Name:    name,
		Source:  memory.SourceLongTerm,
		GroupBy: groupBy,
	})
	if err != nil {
		return "", fmt.Errorf("creating summary view %s: %w", name, err)
	}

	return created.ID, nil
}

// refreshSummaryView triggers an async refresh of the named view, creating
// it first when needed. Best-effort: failures only log.
func (r *Runner) refreshSummaryView(ctx context.Context, name string, groupBy []string) {
	viewID, err := r.ensureSummaryView(ctx, name, groupBy)
	if err != nil {
		r.log.Warn("summary view unavailable", zap.String("view", name), zap.Error(err))
		return
	}

	taskID, err := r.client.RunSummaryView(ctx, viewID)
	if err != nil {
		r.log.Warn("failed to start summary refresh", zap.String("view", name), zap.Error(err))
		return
	}
	r.log.Debug("started summary refresh", zap.String("view", name), zap.String("task", taskID))
}

// shortUUID returns the first 8 hex characters of a fresh UUID.
func shortUUID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}

// fallbackSessionID is used by the stop hook when no persistent session ID
// resolves: augment-{timestamp}-{8 hex}.
func fallbackSessionID(now time.Time) string {
	return "augment-" + now.Format("20060102-150405") + "-" + shortUUID()
}

// toolSessionID is the post-tool-use fallback: augment-tools-{8 hex}.
func toolSessionID() string {
	return "augment-tools-" + shortUUID()
}

// stringField reads a string value from a decoded JSON object, returning
// fallback when the key is absent or not a string.
func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return fallback
}
