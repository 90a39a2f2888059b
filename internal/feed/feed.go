// Package feed delivers fresh query results to subscribers whenever a write
// touches the data those queries read.
//
// Writers call Notify after committing. Notify only records the changed
// topics and wakes the dispatcher goroutine, so a write never waits on a
// subscriber. The dispatcher re-runs every affected subscription's query and
// hands the result over with latest-wins semantics: a consumer may miss
// intermediate snapshots but always ends up holding the newest one.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Topic names a set of rows a query depends on. ID 0 matches every ID of
// the entity.
type Topic struct {
	Entity string
	ID     int64
}

func (t Topic) String() string {
	if t.ID == 0 {
		return t.Entity
	}
	return fmt.Sprintf("%s/%d", t.Entity, t.ID)
}

func (t Topic) matches(changed Topic) bool {
	if t.Entity != changed.Entity {
		return false
	}
	return t.ID == 0 || changed.ID == 0 || t.ID == changed.ID
}

type subscriber struct {
	topics  []Topic
	refresh func() error
}

func (s *subscriber) interested(changed map[Topic]struct{}) bool {
	for c := range changed {
		for _, t := range s.topics {
			if t.matches(c) {
				return true
			}
		}
	}
	return false
}

// Feed tracks subscriptions and fans change notifications out to them.
type Feed struct {
	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	pending map[Topic]struct{}
	wake    chan struct{}
	logger  *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Feed. Call Start to begin delivering notifications.
func New(logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		subs:    make(map[*subscriber]struct{}),
		pending: make(map[Topic]struct{}),
		wake:    make(chan struct{}, 1),
		logger:  logger,
	}
}

// Start runs the dispatcher until ctx is cancelled or Stop is called.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	ctx, f.cancel = context.WithCancel(ctx)
	f.done = make(chan struct{})
	done := f.done
	f.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-f.wake:
				f.dispatch()
			}
		}
	}()
}

// Stop halts the dispatcher and waits for an in-flight dispatch to finish.
// Open subscriptions stay open but receive nothing further.
func (f *Feed) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	done := f.done
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Notify marks topics as changed. It never blocks.
func (f *Feed) Notify(topics ...Topic) {
	if len(topics) == 0 {
		return
	}
	f.mu.Lock()
	for _, t := range topics {
		f.pending[t] = struct{}{}
	}
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
		// Dispatcher already woken; it will pick up the merged topics.
	}
}

// SubscriberCount returns the number of live subscriptions.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Feed) add(s *subscriber) {
	f.mu.Lock()
	f.subs[s] = struct{}{}
	f.mu.Unlock()
}

func (f *Feed) remove(s *subscriber) {
	f.mu.Lock()
	delete(f.subs, s)
	f.mu.Unlock()
}

func (f *Feed) dispatch() {
	f.mu.Lock()
	changed := f.pending
	f.pending = make(map[Topic]struct{})
	var targets []*subscriber
	for s := range f.subs {
		if s.interested(changed) {
			targets = append(targets, s)
		}
	}
	f.mu.Unlock()

	for _, s := range targets {
		if err := s.refresh(); err != nil {
			f.logger.Error("refresh subscription", "topics", s.topics, "error", err)
		}
	}
}
