package memory

import (
	"context"
	"sync"
)

// DigestIndex is an in-memory implementation of app.DigestIndex.
type DigestIndex struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewDigestIndex() *DigestIndex {
	return &DigestIndex{
		entries: make(map[string]string),
	}
}

func (d *DigestIndex) Lookup(_ context.Context, digest string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	quizID, ok := d.entries[digest]
	return quizID, ok
}

func (d *DigestIndex) Remember(_ context.Context, digest, quizID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[digest] = quizID
	return nil
}
