package hooks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/augmentcode/augmem/pkg/memory"
)

// Tools whose invocations are pure lookups and not worth remembering.
var skipTools = map[string]struct{}{
	"view":               {},
	"codebase-retrieval": {},
	"web-search":         {},
	"web-fetch":          {},
}

// maxChangeEntries bounds how many file changes one tool memory lists.
const maxChangeEntries = 5

// PostToolUse records one tool invocation as a system message in the
// session's working memory. Opt-in: a no-op unless tool tracking is enabled.
// Always returns EmptyResult.
func (r *Runner) PostToolUse(ctx context.Context, in *Input) string {
	if !r.settings.TrackToolUsage {
		return EmptyResult
	}
	if in == nil {
		in = &Input{}
	}

	summary := FormatToolUsage(in)
	if summary == "" {
		return EmptyResult
	}

	_, namespace, sessionID := r.deriveIdentity(in)
	if sessionID == "" {
		sessionID = toolSessionID()
	}

	msg := memory.Message{
		ID:        uuid.NewString(),
		Role:      memory.RoleSystem,
		Content:   summary,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.client.AppendMessages(ctx, sessionID, namespace, r.settings.UserID, []memory.Message{msg}); err != nil {
		r.log.Warn("failed to record tool usage", zap.Error(err))
		return EmptyResult
	}
	r.log.Debug("recorded tool usage",
		zap.String("tool", in.ToolName),
		zap.String("session_id", sessionID))

	return EmptyResult
}

// FormatToolUsage renders one tool invocation as a single memory line, or ""
// when the tool is unnamed or on the skip list. Tool-specific detail is
// included for process launches, file edits, and GitHub API calls; up to
// five file changes and a truncated error round out the line.
func FormatToolUsage(in *Input) string {
	if in == nil || in.ToolName == "" {
		return ""
	}
	if _, ok := skipTools[in.ToolName]; ok {
		return ""
	}

	parts := []string{"Used tool: " + in.ToolName}

	switch in.ToolName {
	case "launch-process":
		if command := stringField(in.ToolInput, "command", ""); command != "" {
			parts = append(parts, "Command: "+truncate(command, 200))
		}
	case "str-replace-editor", "save-file":
		if path := stringField(in.ToolInput, "path", ""); path != "" {
			parts = append(parts, "File: "+path)
		}
	case "github-api":
		if path := stringField(in.ToolInput, "path", ""); path != "" {
			method := stringField(in.ToolInput, "method", "GET")
			parts = append(parts, "GitHub: "+method+" "+path)
		}
	}

	if len(in.FileChanges) > 0 {
		changes := make([]string, 0, maxChangeEntries)
		for _, change := range in.FileChanges {
			if len(changes) == maxChangeEntries {
				break
			}

			changeType := change.ChangeType
			if changeType == "" {
				changeType = "edit"
			}
			path := change.Path
			if path == "" {
				path = "unknown"
			}
			changes = append(changes, changeType+": "+path)
		}
		parts = append(parts, "Changes: "+strings.Join(changes, ", "))
	}

	if in.ToolError != "" {
		parts = append(parts, "Error: "+truncate(in.ToolError, 100))
	}

	return strings.Join(parts, " | ")
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
