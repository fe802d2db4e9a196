// Package workspace derives stable identifiers from a workspace path.
//
// Namespaces, session IDs, and summary view names are all pure functions of
// the workspace root (and optional conversation/session identifiers), so the
// same workspace always maps to the same memory partition across hook
// invocations.
package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
)

// Root returns the primary workspace root: the first entry of roots when
// non-empty, otherwise the process working directory. Returns "" only when
// the working directory cannot be resolved.
func Root(roots []string) string {
	if len(roots) > 0 {
		return roots[0]
	}

	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// ID returns a short stable identifier for a workspace path: the first
// 4 bytes of the SHA-256 of the absolute, lexically-cleaned path, as
// 8 lowercase hex characters.
func ID(root string) string {
	normalized, err := filepath.Abs(root)
	if err != nil {
		normalized = filepath.Clean(root)
	}

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:4])
}

// Name returns the final path component of root, ignoring trailing
// separators. Empty for an empty or filesystem-root path.
func Name(root string) string {
	trimmed := strings.TrimRight(root, string(filepath.Separator))
	if trimmed == "" {
		return ""
	}

	base := filepath.Base(trimmed)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// Sanitize replaces every rune outside [A-Za-z0-9_-] with an underscore.
// Rune order and count are preserved, so the result is idempotent.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Namespace returns the workspace-scoped namespace
// "{base}:{sanitized workspace name}".
func Namespace(base, root string) string {
	return base + ":" + Sanitize(Name(root))
}

// SessionID returns a session identifier that is stable for a given
// (workspace, conversation) pair. With a conversation ID the session tracks
// turns within that conversation; without one it falls back to a
// workspace-wide session keyed by the workspace ID.
func SessionID(root, conversationID string) string {
	name := Name(root)
	if conversationID != "" {
		return "augment:" + name + ":" + conversationID
	}
	return "augment:" + name + ":" + ID(root)
}

// SummaryViewName returns the name of the summary view aggregating all
// memories for a workspace.
func SummaryViewName(root string) string {
	return "augment_workspace_" + Sanitize(Name(root))
}

// SessionSummaryViewName returns the name of the summary view for one
// session within a workspace. The session ID is hashed for brevity.
func SessionSummaryViewName(root, sessionID string) string {
	sum := sha256.Sum256([]byte(sessionID))
	return "augment_session_" + Sanitize(Name(root)) + "_" + hex.EncodeToString(sum[:4])
}
