package chat

import "sync"

// sessionLocks serializes work per session id. An entry lives only while
// some caller holds or waits on it.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{entries: make(map[string]*sessionLock)}
}

// acquire blocks until the caller owns id and returns the release func.
func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &sessionLock{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
