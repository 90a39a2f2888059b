package repository

import (
	"sync"
	"testing"
)

func TestListLocksSerializePerList(t *testing.T) {
	l := newListLocks()

	var mu sync.Mutex
	inside := 0
	maxInside := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock(7)
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("max holders = %d, want 1", maxInside)
	}
	if n := l.len(); n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}

func TestListLocksIndependentLists(t *testing.T) {
	l := newListLocks()

	unlockA := l.lock(1)
	done := make(chan struct{})
	go func() {
		unlockB := l.lock(2)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()

	if n := l.len(); n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}
