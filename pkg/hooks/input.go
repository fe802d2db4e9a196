package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxInputSize caps how much of standard input a hook will read.
const maxInputSize = 1 << 20

// Conversation is the turn data the host includes when the hook is
// registered with includeConversationData.
type Conversation struct {
	UserPrompt        string `json:"userPrompt"`
	AgentTextResponse string `json:"agentTextResponse"`

	// AgentCodeResponse is either a string or a list of
	// {changeType, path} objects, depending on the host version.
	AgentCodeResponse any `json:"agentCodeResponse"`
}

// FileChange describes one file touched by a tool invocation.
type FileChange struct {
	ChangeType string `json:"changeType"`
	Path       string `json:"path"`
}

// Input is the JSON object the host writes to a hook's standard input.
// Every field is optional; an absent field means "no data".
type Input struct {
	WorkspaceRoots []string      `json:"workspace_roots"`
	ConversationID string        `json:"conversation_id"`
	Conversation   *Conversation `json:"conversation"`

	ToolName    string         `json:"tool_name"`
	ToolInput   map[string]any `json:"tool_input"`
	ToolError   string         `json:"tool_error"`
	FileChanges []FileChange   `json:"file_changes"`
}

// ParseInput decodes one JSON object from r, reading at most 1 MiB. On any
// decode failure the returned Input is empty but usable: callers log the
// error and continue, so a malformed payload never blocks a hook.
func ParseInput(r io.Reader) (*Input, error) {
	in := &Input{}
	if err := json.NewDecoder(io.LimitReader(r, maxInputSize)).Decode(in); err != nil {
		return &Input{}, fmt.Errorf("decoding hook input: %w", err)
	}
	return in, nil
}
