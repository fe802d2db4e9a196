package inmemory

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/augmentcode/augmem/pkg/memory"
)

func newTestMessage(role, content string) memory.Message {
	return memory.Message{
		ID:      "msg-" + role,
		Role:    role,
		Content: content,
	}
}

var _ = Describe("In-Memory Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("NewClient", func() {
		It("returns a non-nil client", func() {
			c := NewClient()
			Expect(c).NotTo(BeNil())
			Expect(c.views).NotTo(BeNil())
			Expect(c.threads).NotTo(BeNil())
		})
	})

	Describe("CreateSummaryView", func() {
		It("assigns sequential IDs", func() {
			c := NewClient()

			first, err := c.CreateSummaryView(ctx, memory.CreateSummaryViewRequest{Name: "one"})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.ID).To(Equal("view-1"))

			second, err := c.CreateSummaryView(ctx, memory.CreateSummaryViewRequest{Name: "two"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal("view-2"))
		})

		It("stores the view under its name", func() {
			c := NewClient()

			_, err := c.CreateSummaryView(ctx, memory.CreateSummaryViewRequest{
				Name:    "augment_user_summary",
				Source:  memory.SourceLongTerm,
				GroupBy: []string{"user_id"},
			})
			Expect(err).NotTo(HaveOccurred())

			stored := c.View("augment_user_summary")
			Expect(stored).NotTo(BeNil())
			Expect(stored.Source).To(Equal("long_term"))
			Expect(stored.GroupBy).To(Equal([]string{"user_id"}))
		})
	})

	Describe("GetSummaryView", func() {
		It("returns a seeded view", func() {
			c := NewClient()
			c.SeedView(memory.SummaryView{ID: "view-7", Name: "existing"})

			view, err := c.GetSummaryView(ctx, "existing")
			Expect(err).NotTo(HaveOccurred())
			Expect(view).NotTo(BeNil())
			Expect(view.ID).To(Equal("view-7"))
		})

		It("returns nil without error for an unknown name", func() {
			c := NewClient()

			view, err := c.GetSummaryView(ctx, "nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(view).To(BeNil())
		})

		It("returns a copy so callers cannot mutate internal state", func() {
			c := NewClient()
			c.SeedView(memory.SummaryView{ID: "view-1", Name: "guarded"})

			view, err := c.GetSummaryView(ctx, "guarded")
			Expect(err).NotTo(HaveOccurred())

			// Mutate the returned view
			view.ID = "mutated"

			// Internal state should be unchanged
			Expect(c.View("guarded").ID).To(Equal("view-1"))
		})
	})

	Describe("RunSummaryView", func() {
		It("records run requests in order", func() {
			c := NewClient()
			c.SeedView(memory.SummaryView{ID: "view-9", Name: "summary"})

			taskID, err := c.RunSummaryView(ctx, "view-9")
			Expect(err).NotTo(HaveOccurred())
			Expect(taskID).To(Equal("task-1"))

			taskID, err = c.RunSummaryView(ctx, "view-9")
			Expect(err).NotTo(HaveOccurred())
			Expect(taskID).To(Equal("task-2"))

			Expect(c.Runs()).To(Equal([]string{"view-9", "view-9"}))
		})

		It("returns a not-found error for an unknown ID", func() {
			c := NewClient()

			_, err := c.RunSummaryView(ctx, "view-404")
			Expect(err).To(HaveOccurred())

			var statusErr memory.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("RunSummaryViewPartition", func() {
		It("returns the seeded summary", func() {
			c := NewClient()
			c.SeedSummary("workspace", memory.PartitionResult{Summary: "built the CLI", MemoryCount: 4})

			result, err := c.RunSummaryViewPartition(ctx, "workspace", map[string]string{"namespace": "augment:cli"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary).To(Equal("built the CLI"))
			Expect(result.MemoryCount).To(Equal(4))
		})

		It("returns an empty result when nothing was seeded", func() {
			c := NewClient()

			result, err := c.RunSummaryViewPartition(ctx, "unseeded", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary).To(BeEmpty())
			Expect(result.MemoryCount).To(BeZero())
		})

		It("records the group for inspection", func() {
			c := NewClient()

			group := map[string]string{"namespace": "augment:cli", "session_id": "s1"}
			_, err := c.RunSummaryViewPartition(ctx, "workspace", group)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.PartitionGroup("workspace")).To(Equal(group))
			Expect(c.PartitionGroup("other")).To(BeNil())
		})

		It("copies the group so later caller mutation does not leak in", func() {
			c := NewClient()

			group := map[string]string{"namespace": "original"}
			_, err := c.RunSummaryViewPartition(ctx, "workspace", group)
			Expect(err).NotTo(HaveOccurred())

			group["namespace"] = "mutated"
			Expect(c.PartitionGroup("workspace")).To(HaveKeyWithValue("namespace", "original"))
		})
	})

	Describe("PutWorkingMemory", func() {
		It("stores the thread under its session ID", func() {
			c := NewClient()

			wm := &memory.WorkingMemory{
				SessionID: "sess-1",
				Namespace: "augment:cli",
				Messages:  []memory.Message{newTestMessage("user", "hello")},
			}
			Expect(c.PutWorkingMemory(ctx, "sess-1", wm)).To(Succeed())

			stored := c.Thread("sess-1")
			Expect(stored).NotTo(BeNil())
			Expect(stored.Namespace).To(Equal("augment:cli"))
			Expect(stored.Messages).To(HaveLen(1))
		})

		It("replaces an existing thread", func() {
			c := NewClient()

			first := &memory.WorkingMemory{
				SessionID: "sess-1",
				Messages:  []memory.Message{newTestMessage("user", "first")},
			}
			Expect(c.PutWorkingMemory(ctx, "sess-1", first)).To(Succeed())

			second := &memory.WorkingMemory{
				SessionID: "sess-1",
				Messages:  []memory.Message{newTestMessage("user", "second")},
			}
			Expect(c.PutWorkingMemory(ctx, "sess-1", second)).To(Succeed())

			stored := c.Thread("sess-1")
			Expect(stored.Messages).To(HaveLen(1))
			Expect(stored.Messages[0].Content).To(Equal("second"))
		})

		It("copies messages so callers cannot mutate internal state", func() {
			c := NewClient()

			msgs := []memory.Message{newTestMessage("user", "original")}
			wm := &memory.WorkingMemory{SessionID: "sess-1", Messages: msgs}
			Expect(c.PutWorkingMemory(ctx, "sess-1", wm)).To(Succeed())

			msgs[0].Content = "mutated"
			Expect(c.Thread("sess-1").Messages[0].Content).To(Equal("original"))
		})

		It("rejects nil working memory", func() {
			c := NewClient()
			Expect(c.PutWorkingMemory(ctx, "sess-1", nil)).To(HaveOccurred())
		})
	})

	Describe("Sessions", func() {
		It("lists stored thread IDs", func() {
			c := NewClient()

			Expect(c.Sessions()).To(BeEmpty())

			wm := &memory.WorkingMemory{SessionID: "sess-1"}
			Expect(c.PutWorkingMemory(ctx, "sess-1", wm)).To(Succeed())
			Expect(c.AppendMessages(ctx, "sess-2", "", "", nil)).To(Succeed())

			Expect(c.Sessions()).To(ConsistOf("sess-1", "sess-2"))
		})
	})

	Describe("AppendMessages", func() {
		It("creates the thread when it does not exist", func() {
			c := NewClient()

			err := c.AppendMessages(ctx, "sess-1", "augment:cli", "alice", []memory.Message{
				newTestMessage("user", "hello"),
			})
			Expect(err).NotTo(HaveOccurred())

			stored := c.Thread("sess-1")
			Expect(stored).NotTo(BeNil())
			Expect(stored.Namespace).To(Equal("augment:cli"))
			Expect(stored.UserID).To(Equal("alice"))
			Expect(stored.Messages).To(HaveLen(1))
		})

		It("appends to an existing thread", func() {
			c := NewClient()

			wm := &memory.WorkingMemory{
				SessionID: "sess-1",
				Messages:  []memory.Message{newTestMessage("user", "turn one")},
			}
			Expect(c.PutWorkingMemory(ctx, "sess-1", wm)).To(Succeed())

			err := c.AppendMessages(ctx, "sess-1", "", "", []memory.Message{
				newTestMessage("assistant", "turn two"),
			})
			Expect(err).NotTo(HaveOccurred())

			stored := c.Thread("sess-1")
			Expect(stored.Messages).To(HaveLen(2))
			Expect(stored.Messages[0].Content).To(Equal("turn one"))
			Expect(stored.Messages[1].Content).To(Equal("turn two"))
		})
	})

	Describe("SearchLongTermMemory", func() {
		It("returns the seeded records with their total", func() {
			c := NewClient()
			c.SeedMemories(
				memory.MemoryRecord{ID: "mem-1", Text: "prefers tabs"},
				memory.MemoryRecord{ID: "mem-2", Text: "works on parsers"},
			)

			results, err := c.SearchLongTermMemory(ctx, memory.SearchRequest{Text: "anything"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results.Total).To(Equal(2))
			Expect(results.Memories).To(HaveLen(2))
			Expect(results.Memories[0].Text).To(Equal("prefers tabs"))
		})

		It("remembers the last request", func() {
			c := NewClient()

			req := memory.SearchRequest{
				Text:              "recent context",
				Namespace:         &memory.EqFilter{Eq: "augment:cli"},
				Limit:             5,
				DistanceThreshold: 0.7,
			}
			_, err := c.SearchLongTermMemory(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			last := c.LastSearch()
			Expect(last).NotTo(BeNil())
			Expect(last.Text).To(Equal("recent context"))
			Expect(last.Namespace.Eq).To(Equal("augment:cli"))
			Expect(last.Limit).To(Equal(5))
		})

		It("returns a copy so callers cannot mutate internal state", func() {
			c := NewClient()
			c.SeedMemories(memory.MemoryRecord{ID: "mem-1", Text: "original"})

			results, err := c.SearchLongTermMemory(ctx, memory.SearchRequest{Text: "q"})
			Expect(err).NotTo(HaveOccurred())

			// Mutate the returned records
			results.Memories[0].Text = "mutated"

			again, err := c.SearchLongTermMemory(ctx, memory.SearchRequest{Text: "q"})
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Memories[0].Text).To(Equal("original"))
		})
	})

	Describe("Ping", func() {
		It("succeeds by default", func() {
			c := NewClient()
			Expect(c.Ping(ctx)).To(Succeed())
		})
	})

	Describe("Fail", func() {
		It("makes every operation return the configured error", func() {
			c := NewClient()
			c.SeedView(memory.SummaryView{ID: "view-1", Name: "any"})
			c.Fail(errors.New("server down"))

			_, err := c.GetSummaryView(ctx, "any")
			Expect(err).To(MatchError("server down"))

			_, err = c.CreateSummaryView(ctx, memory.CreateSummaryViewRequest{Name: "x"})
			Expect(err).To(MatchError("server down"))

			_, err = c.RunSummaryView(ctx, "view-1")
			Expect(err).To(MatchError("server down"))

			_, err = c.RunSummaryViewPartition(ctx, "any", nil)
			Expect(err).To(MatchError("server down"))

			Expect(c.PutWorkingMemory(ctx, "s", &memory.WorkingMemory{})).To(MatchError("server down"))
			Expect(c.AppendMessages(ctx, "s", "", "", nil)).To(MatchError("server down"))

			_, err = c.SearchLongTermMemory(ctx, memory.SearchRequest{Text: "q"})
			Expect(err).To(MatchError("server down"))

			Expect(c.Ping(ctx)).To(MatchError("server down"))
		})

		It("restores normal behavior when cleared", func() {
			c := NewClient()
			c.Fail(errors.New("server down"))
			Expect(c.Ping(ctx)).To(HaveOccurred())

			c.Fail(nil)
			Expect(c.Ping(ctx)).To(Succeed())
		})
	})

	Describe("Calls", func() {
		It("counts operations by name", func() {
			c := NewClient()

			_, _ = c.GetSummaryView(ctx, "a")
			_, _ = c.GetSummaryView(ctx, "b")
			_ = c.Ping(ctx)

			Expect(c.Calls("GetSummaryView")).To(Equal(2))
			Expect(c.Calls("Ping")).To(Equal(1))
			Expect(c.Calls("PutWorkingMemory")).To(BeZero())
		})
	})

	Describe("interface compliance", func() {
		It("satisfies memory.Client", func() {
			var _ memory.Client = NewClient()
		})
	})

	Describe("Close", func() {
		It("is a no-op and returns nil", func() {
			c := NewClient()
			Expect(c.Close()).To(Succeed())
		})
	})
})
