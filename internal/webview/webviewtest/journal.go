// Package webviewtest provides in-memory fakes of the webview engine
// interfaces. All fakes of one engine write to a shared Journal so tests can
// assert on the order of view and cookie operations.
package webviewtest

import (
	"fmt"
	"strings"
	"sync"
)

// Journal is an ordered log of operations.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) record(format string, args ...interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the log.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// Filter returns the entries starting with any of prefixes.
func (j *Journal) Filter(prefixes ...string) []string {
	var out []string
	for _, e := range j.Entries() {
		for _, p := range prefixes {
			if strings.HasPrefix(e, p) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Index returns the position of the first entry equal to entry, or -1.
func (j *Journal) Index(entry string) int {
	for i, e := range j.Entries() {
		if e == entry {
			return i
		}
	}
	return -1
}

// Reset clears the log.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}
