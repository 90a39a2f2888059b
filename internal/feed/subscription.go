package feed

import "sync"

// Subscription is a live view of a query. C yields the initial result and
// then a fresh result after every relevant change.
type Subscription[T any] struct {
	feed  *Feed
	sub   *subscriber
	query func() (T, error)

	// refreshMu serializes query+deliver so an older result can never
	// overwrite a newer one.
	refreshMu sync.Mutex

	mu     sync.Mutex
	ch     chan T
	closed bool
}

// Subscribe registers query for the given topics and delivers its first
// result before returning. If the first query fails the subscription is not
// created.
func Subscribe[T any](f *Feed, query func() (T, error), topics ...Topic) (*Subscription[T], error) {
	s := &Subscription[T]{
		feed:  f,
		query: query,
		ch:    make(chan T, 1),
	}
	s.sub = &subscriber{topics: topics, refresh: s.refresh}

	// Register before the first query so a write committed in between still
	// triggers a refresh.
	f.add(s.sub)
	if err := s.refresh(); err != nil {
		f.remove(s.sub)
		return nil, err
	}
	return s, nil
}

// C returns the snapshot channel. It is closed by Cancel.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Cancel stops delivery and closes C. It is safe to call more than once and
// from any goroutine.
func (s *Subscription[T]) Cancel() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.feed.remove(s.sub)
}

func (s *Subscription[T]) refresh() error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.isClosed() {
		return nil
	}
	v, err := s.query()
	if err != nil {
		return err
	}
	s.deliver(v)
	return nil
}

func (s *Subscription[T]) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// deliver replaces any unread snapshot with v.
func (s *Subscription[T]) deliver(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}
