package hooks_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/augmentcode/augmem/pkg/hooks"
	"github.com/augmentcode/augmem/pkg/workspace"
)

var _ = Describe("PostToolUse", func() {
	var (
		ctx  context.Context
		root string
		in   *hooks.Input
	)

	BeforeEach(func() {
		ctx = context.Background()
		root = "/tmp/augmem-demo"
		in = &hooks.Input{
			WorkspaceRoots: []string{root},
			ConversationID: "conv-1",
			ToolName:       "save-file",
			ToolInput:      map[string]any{"path": "cmd/root.go"},
		}
	})

	It("is a no-op unless tool tracking is enabled", func() {
		runner, client := newTestRunner(newTestSettings())

		Expect(runner.PostToolUse(ctx, in)).To(Equal(hooks.EmptyResult))
		Expect(client.Calls("AppendMessages")).To(BeZero())
	})

	It("skips denylisted tools", func() {
		settings := newTestSettings()
		settings.TrackToolUsage = true
		runner, client := newTestRunner(settings)

		in.ToolName = "codebase-retrieval"
		Expect(runner.PostToolUse(ctx, in)).To(Equal(hooks.EmptyResult))
		Expect(client.Calls("AppendMessages")).To(BeZero())
	})

	It("skips unnamed tools", func() {
		settings := newTestSettings()
		settings.TrackToolUsage = true
		runner, client := newTestRunner(settings)

		in.ToolName = ""
		Expect(runner.PostToolUse(ctx, in)).To(Equal(hooks.EmptyResult))
		Expect(client.Calls("AppendMessages")).To(BeZero())
	})

	It("appends a system message to the persistent session", func() {
		settings := newTestSettings()
		settings.TrackToolUsage = true
		runner, client := newTestRunner(settings)

		Expect(runner.PostToolUse(ctx, in)).To(Equal(hooks.EmptyResult))

		thread := client.Thread(workspace.SessionID(root, "conv-1"))
		Expect(thread).NotTo(BeNil())
		Expect(thread.Namespace).To(Equal("augment:augmem-demo"))
		Expect(thread.Messages).To(HaveLen(1))
		Expect(thread.Messages[0].Role).To(Equal("system"))
		Expect(thread.Messages[0].Content).To(Equal("Used tool: save-file | File: cmd/root.go"))
	})

	It("uses a tools fallback session when persistence is off", func() {
		settings := newTestSettings()
		settings.TrackToolUsage = true
		settings.UsePersistentSession = false
		runner, client := newTestRunner(settings)

		runner.PostToolUse(ctx, in)

		sessions := client.Sessions()
		Expect(sessions).To(HaveLen(1))
		Expect(sessions[0]).To(MatchRegexp(`^augment-tools-[0-9a-f]{8}$`))
	})

	It("returns the empty result when the append fails", func() {
		settings := newTestSettings()
		settings.TrackToolUsage = true
		runner, client := newTestRunner(settings)
		client.Fail(errors.New("connection refused"))

		Expect(runner.PostToolUse(ctx, in)).To(Equal(hooks.EmptyResult))
	})

	It("returns the empty result for nil input", func() {
		settings := newTestSettings()
		settings.TrackToolUsage = true
		runner, client := newTestRunner(settings)

		Expect(runner.PostToolUse(ctx, nil)).To(Equal(hooks.EmptyResult))
		Expect(client.Calls("AppendMessages")).To(BeZero())
	})
})

var _ = Describe("FormatToolUsage", func() {
	It("returns empty for lookup tools", func() {
		for _, tool := range []string{"view", "codebase-retrieval", "web-search", "web-fetch"} {
			Expect(hooks.FormatToolUsage(&hooks.Input{ToolName: tool})).To(BeEmpty())
		}
	})

	It("returns empty without a tool name", func() {
		Expect(hooks.FormatToolUsage(&hooks.Input{})).To(BeEmpty())
		Expect(hooks.FormatToolUsage(nil)).To(BeEmpty())
	})

	It("formats a bare tool invocation", func() {
		out := hooks.FormatToolUsage(&hooks.Input{ToolName: "custom-tool"})
		Expect(out).To(Equal("Used tool: custom-tool"))
	})

	It("includes the command for process launches", func() {
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:  "launch-process",
			ToolInput: map[string]any{"command": "pytest -v"},
		})
		Expect(out).To(Equal("Used tool: launch-process | Command: pytest -v"))
	})

	It("truncates long commands to 200 characters", func() {
		long := strings.Repeat("x", 250)
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:  "launch-process",
			ToolInput: map[string]any{"command": long},
		})
		Expect(out).To(Equal("Used tool: launch-process | Command: " + strings.Repeat("x", 200)))
	})

	It("includes the file path for editor tools", func() {
		for _, tool := range []string{"str-replace-editor", "save-file"} {
			out := hooks.FormatToolUsage(&hooks.Input{
				ToolName:  tool,
				ToolInput: map[string]any{"path": "pkg/hooks/input.go"},
			})
			Expect(out).To(Equal("Used tool: " + tool + " | File: pkg/hooks/input.go"))
		}
	})

	It("includes method and path for GitHub API calls", func() {
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:  "github-api",
			ToolInput: map[string]any{"method": "POST", "path": "/repos/acme/api/issues"},
		})
		Expect(out).To(Equal("Used tool: github-api | GitHub: POST /repos/acme/api/issues"))
	})

	It("defaults the GitHub method to GET", func() {
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:  "github-api",
			ToolInput: map[string]any{"path": "/repos/acme/api"},
		})
		Expect(out).To(Equal("Used tool: github-api | GitHub: GET /repos/acme/api"))
	})

	It("lists at most five file changes", func() {
		changes := make([]hooks.FileChange, 7)
		for i := range changes {
			changes[i] = hooks.FileChange{ChangeType: "edit", Path: "file.go"}
		}
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:    "save-file",
			FileChanges: changes,
		})
		Expect(strings.Count(out, "edit: file.go")).To(Equal(5))
	})

	It("defaults missing change fields", func() {
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:    "custom-tool",
			FileChanges: []hooks.FileChange{{}},
		})
		Expect(out).To(Equal("Used tool: custom-tool | Changes: edit: unknown"))
	})

	It("truncates long errors to 100 characters", func() {
		long := strings.Repeat("e", 150)
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:  "custom-tool",
			ToolError: long,
		})
		Expect(out).To(Equal("Used tool: custom-tool | Error: " + strings.Repeat("e", 100)))
	})

	It("joins every part with pipes", func() {
		out := hooks.FormatToolUsage(&hooks.Input{
			ToolName:  "launch-process",
			ToolInput: map[string]any{"command": "go test ./..."},
			FileChanges: []hooks.FileChange{
				{ChangeType: "edit", Path: "pkg/hooks/stop.go"},
			},
			ToolError: "exit status 1",
		})
		Expect(out).To(Equal(
			"Used tool: launch-process | Command: go test ./... | " +
				"Changes: edit: pkg/hooks/stop.go | Error: exit status 1"))
	})
})
