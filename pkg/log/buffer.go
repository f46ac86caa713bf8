package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultRingCapacity is used when a [Ring] is created without a capacity.
const DefaultRingCapacity = 100

// Ring is an [io.Writer] keeping the most recent writes, one entry per
// Write call. Once full, every write drops the oldest entry. It is safe for
// concurrent use.
type Ring struct {
	entries [][]byte
	next    int
	mu      sync.Mutex
	full    bool
}

// NewRing creates a ring holding up to capacity entries.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}

	return &Ring{entries: make([][]byte, capacity)}
}

func (r *Ring) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	entry := make([]byte, len(p))
	copy(entry, p)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}

	return len(p), nil
}

// Entries returns copies of the stored entries, oldest first.
func (r *Ring) Entries() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	ordered := r.entries[:r.next]
	if r.full {
		ordered = append(append([][]byte{}, r.entries[r.next:]...), r.entries[:r.next]...)
	}

	out := make([][]byte, 0, len(ordered))
	for _, e := range ordered {
		out = append(out, append([]byte(nil), e...))
	}

	return out
}

// Len returns the number of stored entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.full {
		return len(r.entries)
	}

	return r.next
}

func (r *Ring) Cap() int {
	return len(r.entries)
}

// Reset drops every entry.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
	r.next = 0
	r.full = false
}

// WriteTo writes the stored entries to w, oldest first.
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, e := range r.Entries() {
		n, err := w.Write(e)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write log entry: %w", err)
		}
	}

	return total, nil
}
