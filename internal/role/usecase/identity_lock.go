package usecase

import (
	"sync"

	"github.com/colorsync/colorsync/internal/role/domain"
)

// identityLocks serializes mutating operations per identity. Concurrent
// applies for the same identity racing through "find, absent, create" could
// each decide to create, violating the at-most-one invariant; holding the
// identity's lock across the whole operation closes that window. Entries are
// reference counted and removed when the last holder releases, so the map
// does not grow with the total user population.
type identityLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newIdentityLocks() *identityLocks {
	return &identityLocks{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the identity's lock is held and returns the release
// function.
func (l *identityLocks) acquire(identity domain.Identity) func() {
	key := identity.Key()

	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
