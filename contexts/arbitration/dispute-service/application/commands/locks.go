package commands

import "sync"

// DisputeLocks serializes vote and resolve execution per dispute id, so
// only operations touching the same dispute contend.
type DisputeLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewDisputeLocks() *DisputeLocks {
	return &DisputeLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for disputeID, creating it on first use, and
// returns the matching unlock func. Lock entries are retained for the
// process lifetime; the dispute keyspace is small enough that reaping is
// not worth the bookkeeping.
func (l *DisputeLocks) Lock(disputeID int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[disputeID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[disputeID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
