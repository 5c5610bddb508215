package journal

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Operation names recorded by the serving layer.
const (
	OpSet    = "set"
	OpGet    = "get"
	OpRemove = "remove"
	OpClear  = "clear"
)

// Entry is one recorded store operation.
type Entry struct {
	Time time.Time `json:"time"`
	Op   string    `json:"op"`
	Key  string    `json:"key,omitempty"`
	// Result is "hit" or "miss" for reads, empty otherwise. A miss covers
	// both never-written keys and entries that expired.
	Result string `json:"result,omitempty"`
}

// Journal captures store operations for the dashboard event feed.
// The core store never writes to it; only the serving layer does.
// Thread-safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	writer  io.Writer // optional: stream entries as they arrive
}

// New creates a Journal. If w is non-nil, entries are also written to w
// as newline-delimited JSON as they arrive.
func New(w io.Writer) *Journal {
	return &Journal{
		writer: w,
	}
}

// Record captures a single operation.
func (j *Journal) Record(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, e)

	if j.writer != nil {
		if err := json.NewEncoder(j.writer).Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// Tail returns a copy of the most recent n entries, oldest first.
func (j *Journal) Tail(n int) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	if n > len(j.entries) {
		n = len(j.entries)
	}
	out := make([]Entry, n)
	copy(out, j.entries[len(j.entries)-n:])
	return out
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// ExportJSON writes all entries to the given writer as a JSON array.
func (j *Journal) ExportJSON(w io.Writer) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.entries)
}
