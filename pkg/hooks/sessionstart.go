package hooks

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/augmentcode/augmem/pkg/config"
	"github.com/augmentcode/augmem/pkg/memory"
	"github.com/augmentcode/augmem/pkg/workspace"
)

// SessionStart assembles memory context for a new session: workspace and
// session summaries plus relevant long-term memories. Returns the context
// block, or EmptyResult when recall is disabled or nothing is available.
func (r *Runner) SessionStart(ctx context.Context, in *Input) string {
	if !r.settings.AutoRecall {
		return EmptyResult
	}
	if in == nil {
		in = &Input{}
	}

	if out := r.Recall(ctx, in, DefaultRecallQuery); out != "" {
		return out
	}
	return EmptyResult
}

// Recall runs the recall pipeline: ensure and query the enabled summary
// views, search long-term memory with the given query, and assemble the
// result with BuildContext. Every step is best-effort; a failed step
// contributes nothing. Returns "" when no context is available.
func (r *Runner) Recall(ctx context.Context, in *Input, query string) string {
	if in == nil {
		in = &Input{}
	}
	root, namespace, sessionID := r.deriveIdentity(in)

	r.log.Debug("recall",
		zap.String("namespace", namespace),
		zap.String("session_id", sessionID),
		zap.String("workspace", root))

	var workspaceSummary, sessionSummary string

	if r.settings.CreateWorkspaceSummary && root != "" && namespace != "" {
		viewName := workspace.SummaryViewName(root)
		if _, err := r.ensureSummaryView(ctx, viewName, []string{config.GroupByNamespace}); err != nil {
			r.log.Warn("summary view unavailable", zap.String("view", viewName), zap.Error(err))
		}
		workspaceSummary = r.partitionSummary(ctx, viewName, map[string]string{
			config.GroupByNamespace: namespace,
		})
	}

	if r.settings.CreateSessionSummary && root != "" && sessionID != "" && namespace != "" {
		viewName := workspace.SessionSummaryViewName(root, sessionID)
		if _, err := r.ensureSummaryView(ctx, viewName, []string{config.GroupByNamespace, config.GroupBySessionID}); err != nil {
			r.log.Warn("summary view unavailable", zap.String("view", viewName), zap.Error(err))
		}
		sessionSummary = r.partitionSummary(ctx, viewName, map[string]string{
			config.GroupByNamespace: namespace,
			config.GroupBySessionID: sessionID,
		})
	}

	memories := r.searchMemories(ctx, query, namespace)

	return BuildContext(workspaceSummary, sessionSummary, memories)
}

// partitionSummary runs one partition of a summary view and returns its
// summary text, or "" when the run fails or produces nothing.
func (r *Runner) partitionSummary(ctx context.Context, viewName string, group map[string]string) string {
	result, err := r.client.RunSummaryViewPartition(ctx, viewName, group)
	if err != nil {
		r.log.Warn("summary partition failed", zap.String("view", viewName), zap.Error(err))
		return ""
	}
	if result.Summary == "" {
		r.log.Debug("no summary generated", zap.String("view", viewName))
		return ""
	}

	r.log.Debug("summary retrieved",
		zap.String("view", viewName),
		zap.Int("memories", result.MemoryCount))
	return result.Summary
}

// searchMemories queries long-term memory and returns the non-empty memory
// texts, or nil when the search fails.
func (r *Runner) searchMemories(ctx context.Context, query, namespace string) []string {
	req := memory.SearchRequest{
		Text:              query,
		Limit:             r.settings.RecallLimit,
		DistanceThreshold: 1 - r.settings.MinScore,
		CreatedAt: &memory.TimeFilter{
			Gte: time.Now().UTC().AddDate(0, 0, -r.settings.SummaryTimeWindowDays),
		},
	}
	if namespace != "" {
		req.Namespace = &memory.EqFilter{Eq: namespace}
	}
	if r.settings.UserID != "" {
		req.UserID = &memory.EqFilter{Eq: r.settings.UserID}
	}

	results, err := r.client.SearchLongTermMemory(ctx, req)
	if err != nil {
		r.log.Warn("memory search failed", zap.Error(err))
		return nil
	}

	memories := make([]string, 0, len(results.Memories))
	for _, m := range results.Memories {
		if m.Text != "" {
			memories = append(memories, m.Text)
		}
	}

	r.log.Debug("memories found", zap.Int("count", len(memories)))
	return memories
}

// BuildContext assembles the session context block from the recalled pieces.
// Sections are omitted when empty; the result is "" when nothing is
// available.
func BuildContext(workspaceSummary, sessionSummary string, memories []string) string {
	var parts []string

	if workspaceSummary != "" {
		parts = append(parts, "## Workspace Context\n"+workspaceSummary)
	}

	if sessionSummary != "" {
		parts = append(parts, "## Session Context\n"+sessionSummary)
	}

	if len(memories) > 0 {
		parts = append(parts, "## Relevant Memories")
		for i, mem := range memories {
			parts = append(parts, strconv.Itoa(i+1)+". "+mem)
		}
	}

	return strings.Join(parts, "\n\n")
}
