package hooks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/augmentcode/augmem/pkg/config"
	"github.com/augmentcode/augmem/pkg/memory"
	"github.com/augmentcode/augmem/pkg/workspace"
)

// Stop captures the just-finished conversation turn into working memory and
// kicks off summary view refreshes. Always returns EmptyResult.
func (r *Runner) Stop(ctx context.Context, in *Input) string {
	if !r.settings.AutoCapture {
		return EmptyResult
	}
	if in == nil || in.Conversation == nil {
		return EmptyResult
	}

	now := time.Now().UTC()
	messages := ExtractMessages(in.Conversation, now)
	if len(messages) == 0 {
		return EmptyResult
	}

	root, namespace, sessionID := r.deriveIdentity(in)
	if sessionID == "" {
		sessionID = fallbackSessionID(now)
	}

	wm := &memory.WorkingMemory{
		SessionID: sessionID,
		Namespace: namespace,
		UserID:    r.settings.UserID,
		Messages:  messages,
		LongTermMemoryStrategy: &memory.StrategyConfig{
			Strategy:     r.settings.ExtractionStrategy,
			CustomPrompt: r.settings.CustomPrompt,
		},
	}

	if err := r.client.PutWorkingMemory(ctx, sessionID, wm); err != nil {
		r.log.Warn("failed to save working memory", zap.Error(err))
		return EmptyResult
	}
	r.log.Debug("saved conversation turn",
		zap.Int("messages", len(messages)),
		zap.String("session_id", sessionID))

	if r.settings.CreateWorkspaceSummary && root != "" {
		r.refreshSummaryView(ctx, workspace.SummaryViewName(root), []string{config.GroupByNamespace})
	}
	if r.settings.CreateSessionSummary && root != "" {
		r.refreshSummaryView(ctx, workspace.SessionSummaryViewName(root, sessionID),
			[]string{config.GroupByNamespace, config.GroupBySessionID})
	}

	return EmptyResult
}

// ExtractMessages converts conversation turn data into memory messages: at
// most one user message from the prompt and one assistant message combining
// the text response with any code change tokens. All messages share the
// given timestamp.
func ExtractMessages(conv *Conversation, now time.Time) []memory.Message {
	if conv == nil {
		return nil
	}

	var messages []memory.Message

	if conv.UserPrompt != "" {
		messages = append(messages, memory.Message{
			ID:        uuid.NewString(),
			Role:      memory.RoleUser,
			Content:   conv.UserPrompt,
			CreatedAt: now,
		})
	}

	var parts []string
	if conv.AgentTextResponse != "" {
		parts = append(parts, conv.AgentTextResponse)
	}
	parts = append(parts, codeResponseParts(conv.AgentCodeResponse)...)

	if len(parts) > 0 {
		messages = append(messages, memory.Message{
			ID:        uuid.NewString(),
			Role:      memory.RoleAssistant,
			Content:   strings.Join(parts, "\n\n"),
			CreatedAt: now,
		})
	}

	return messages
}

// codeResponseParts renders an agentCodeResponse value. A list of change
// objects becomes one "[changeType: path]" token per entry; anything else
// contributes its string form.
func codeResponseParts(code any) []string {
	switch v := code.(type) {
	case nil:
		return nil
	case []any:
		var parts []string
		for _, entry := range v {
			change, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			changeType := stringField(change, "changeType", "edit")
			path := stringField(change, "path", "unknown")
			parts = append(parts, "["+changeType+": "+path+"]")
		}
		return parts
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return []string{fmt.Sprint(v)}
	}
}
