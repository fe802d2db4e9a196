// Package inmemory provides an in-process implementation of the
// memory.Client interface.
//
// State lives in mutex-guarded maps: summary views keyed by name and
// working-memory threads keyed by session ID. Search results and partition
// summaries are seeded by the caller, every operation is counted, and a
// settable error makes the whole client fail. This is the client the hook
// tests run against; a real server is never required.
package inmemory

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/augmentcode/augmem/pkg/memory"
)

// Client implements memory.Client using in-process data structures.
type Client struct {
	mu sync.Mutex

	// views maps view name -> summary view.
	views map[string]*memory.SummaryView

	// threads maps session ID -> working memory for that session.
	threads map[string]*memory.WorkingMemory

	// summaries maps view name -> seeded partition result.
	summaries map[string]*memory.PartitionResult

	// groups maps view name -> the group passed to the last partition run.
	groups map[string]map[string]string

	// records are the seeded search results.
	records []memory.MemoryRecord

	// runs holds the view IDs whose async refresh was requested, in order.
	runs []string

	lastSearch *memory.SearchRequest

	calls  map[string]int
	err    error
	nextID int
}

// NewClient creates an empty in-memory client.
func NewClient() *Client {
	return &Client{
		views:     make(map[string]*memory.SummaryView),
		threads:   make(map[string]*memory.WorkingMemory),
		summaries: make(map[string]*memory.PartitionResult),
		groups:    make(map[string]map[string]string),
		calls:     make(map[string]int),
	}
}

// Fail makes every subsequent operation return err. Passing nil restores
// normal behavior.
func (c *Client) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// SeedView registers an existing summary view.
func (c *Client) SeedView(view memory.SummaryView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[view.Name] = &view
}

// SeedSummary sets the partition result returned for the named view.
func (c *Client) SeedSummary(viewName string, result memory.PartitionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[viewName] = &result
}

// SeedMemories sets the records returned by SearchLongTermMemory.
func (c *Client) SeedMemories(records ...memory.MemoryRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append([]memory.MemoryRecord(nil), records...)
}

// View returns the stored summary view with the given name, or nil.
func (c *Client) View(name string) *memory.SummaryView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.views[name]
}

// Thread returns the working memory stored for a session, or nil.
func (c *Client) Thread(sessionID string) *memory.WorkingMemory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threads[sessionID]
}

// Sessions returns the IDs of all stored working-memory threads.
func (c *Client) Sessions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.threads))
	for id := range c.threads {
		ids = append(ids, id)
	}
	return ids
}

// Runs returns the view IDs whose async refresh was requested, in order.
func (c *Client) Runs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.runs...)
}

// PartitionGroup returns the group passed to the last partition run of the
// named view, or nil if the view was never run.
func (c *Client) PartitionGroup(viewName string) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groups[viewName]
}

// LastSearch returns the most recent search request, or nil.
func (c *Client) LastSearch() *memory.SearchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSearch
}

// Calls returns how many times the named operation was invoked.
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

// GetSummaryView looks up a summary view by name.
// Returns (nil, nil) when no view with that name exists.
func (c *Client) GetSummaryView(_ context.Context, name string) (*memory.SummaryView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetSummaryView"]++
	if c.err != nil {
		return nil, c.err
	}

	view, ok := c.views[name]
	if !ok {
		return nil, nil
	}

	cp := *view
	return &cp, nil
}

// CreateSummaryView registers a new summary view with a generated ID.
func (c *Client) CreateSummaryView(_ context.Context, req memory.CreateSummaryViewRequest) (*memory.SummaryView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["CreateSummaryView"]++
	if c.err != nil {
		return nil, c.err
	}

	c.nextID++
	view := &memory.SummaryView{
		ID:      "view-" + strconv.Itoa(c.nextID),
		Name:    req.Name,
		Source:  req.Source,
		GroupBy: req.GroupBy,
	}
	c.views[view.Name] = view

	cp := *view
	return &cp, nil
}

// RunSummaryView records a refresh request for the view with the given ID.
func (c *Client) RunSummaryView(_ context.Context, viewID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["RunSummaryView"]++
	if c.err != nil {
		return "", c.err
	}

	found := false
	for _, view := range c.views {
		if view.ID == viewID {
			found = true
			break
		}
	}
	if !found {
		return "", memory.StatusError{StatusCode: http.StatusNotFound, Body: "summary view not found"}
	}

	c.runs = append(c.runs, viewID)
	c.nextID++

	return "task-" + strconv.Itoa(c.nextID), nil
}

// RunSummaryViewPartition returns the seeded summary for the named view, or
// an empty result when none was seeded. The group is recorded for
// inspection via PartitionGroup.
func (c *Client) RunSummaryViewPartition(_ context.Context, viewName string, group map[string]string) (*memory.PartitionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["RunSummaryViewPartition"]++
	if c.err != nil {
		return nil, c.err
	}

	cp := make(map[string]string, len(group))
	for k, v := range group {
		cp[k] = v
	}
	c.groups[viewName] = cp

	if result, ok := c.summaries[viewName]; ok {
		r := *result
		return &r, nil
	}

	return &memory.PartitionResult{}, nil
}

// PutWorkingMemory stores the working memory for a session, replacing any
// thread already held for that session ID.
func (c *Client) PutWorkingMemory(_ context.Context, sessionID string, wm *memory.WorkingMemory) error {
	if wm == nil {
		return errors.New("cannot put nil working memory")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["PutWorkingMemory"]++
	if c.err != nil {
		return c.err
	}

	cp := *wm
	cp.Messages = append([]memory.Message(nil), wm.Messages...)
	c.threads[sessionID] = &cp

	return nil
}

// AppendMessages appends messages to a session's thread, creating it if it
// does not exist yet.
func (c *Client) AppendMessages(_ context.Context, sessionID, namespace, userID string, msgs []memory.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["AppendMessages"]++
	if c.err != nil {
		return c.err
	}

	thread, ok := c.threads[sessionID]
	if !ok {
		thread = &memory.WorkingMemory{
			SessionID: sessionID,
			Namespace: namespace,
			UserID:    userID,
		}
		c.threads[sessionID] = thread
	}
	thread.Messages = append(thread.Messages, msgs...)

	return nil
}

// SearchLongTermMemory returns the seeded records and remembers the request.
func (c *Client) SearchLongTermMemory(_ context.Context, req memory.SearchRequest) (*memory.SearchResults, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["SearchLongTermMemory"]++
	if c.err != nil {
		return nil, c.err
	}

	c.lastSearch = &req

	memories := append([]memory.MemoryRecord(nil), c.records...)
	return &memory.SearchResults{
		Memories: memories,
		Total:    len(memories),
	}, nil
}

// Ping reports the configured error, if any.
func (c *Client) Ping(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["Ping"]++
	return c.err
}

// Close is a no-op for the in-memory client.
func (c *Client) Close() error {
	return nil
}

// Ensure Client implements memory.Client
var _ memory.Client = (*Client)(nil)
