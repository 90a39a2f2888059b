package repository

import "sync"

// listLocks serializes read-modify-write sequences per list. Entries are
// reference counted and removed once no goroutine holds or waits on them.
type listLocks struct {
	mu    sync.Mutex
	locks map[int64]*listLock
}

type listLock struct {
	sync.Mutex
	refs int
}

func newListLocks() *listLocks {
	return &listLocks{locks: make(map[int64]*listLock)}
}

// lock acquires the lock for listID and returns its release func.
func (l *listLocks) lock(listID int64) func() {
	l.mu.Lock()
	lk, ok := l.locks[listID]
	if !ok {
		lk = &listLock{}
		l.locks[listID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, listID)
		}
		l.mu.Unlock()
	}
}

func (l *listLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
