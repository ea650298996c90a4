// Package fetch provides the small data-fetching policies the client apps
// share: last-request-wins queries and optimistic list mutations.
package fetch

import "sync"

// Latest discards results of superseded requests. Each logical key (for
// example "recipes?search=…" as the user types) tracks a sequence number;
// when a newer request for the same key has started, the older result is
// dropped instead of being delivered. The underlying transport call is not
// cancelled, only its result ignored.
type Latest struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

// NewLatest creates an empty guard.
func NewLatest() *Latest {
	return &Latest{seqs: make(map[string]uint64)}
}

// Begin registers a new request for key and returns its ticket.
func (l *Latest) Begin(key string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seqs[key]++
	return l.seqs[key]
}

// Current reports whether the ticket still belongs to the newest request for
// its key. A stale ticket means the result must be discarded.
func (l *Latest) Current(key string, ticket uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seqs[key] == ticket
}

// Do runs fn and delivers its result to deliver only if no newer request for
// key started in the meantime. It returns true when the result was delivered.
func Do[T any](l *Latest, key string, fn func() (T, error), deliver func(T, error)) bool {
	ticket := l.Begin(key)
	value, err := fn()
	if !l.Current(key, ticket) {
		return false
	}
	deliver(value, err)
	return true
}
