package usecase

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colorsync/colorsync/internal/role/domain"
)

func TestIdentityLocks_SerializesSameIdentity(t *testing.T) {
	locks := newIdentityLocks()
	identity := domain.Identity{WorkspaceID: 1, UserID: 42}

	const workers = 16
	var inCritical atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.acquire(identity)
			defer release()

			if n := inCritical.Add(1); n != 1 {
				t.Errorf("expected exclusive access, %d holders inside", n)
			}
			time.Sleep(time.Millisecond)
			inCritical.Add(-1)
		}()
	}
	wg.Wait()
}

func TestIdentityLocks_DistinctIdentitiesDoNotBlock(t *testing.T) {
	locks := newIdentityLocks()

	releaseA := locks.acquire(domain.Identity{WorkspaceID: 1, UserID: 1})
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB := locks.acquire(domain.Identity{WorkspaceID: 1, UserID: 2})
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquiring a different identity's lock blocked")
	}
}

func TestIdentityLocks_EntriesAreReclaimed(t *testing.T) {
	locks := newIdentityLocks()
	identity := domain.Identity{WorkspaceID: 1, UserID: 42}

	release := locks.acquire(identity)
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.entries, "released locks must not linger")
}
