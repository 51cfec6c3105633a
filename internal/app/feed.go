package app

import (
	"sync"

	"golden-brain/internal/domain"
)

// Feed fans standings snapshots out to spectators. Slow subscribers only
// ever see the latest snapshot.
type Feed struct {
	mu          sync.Mutex
	subscribers map[chan domain.Standings]struct{}
}

func NewFeed() *Feed {
	return &Feed{subscribers: make(map[chan domain.Standings]struct{})}
}

// Subscribe registers a channel primed with snapshot(). The snapshot is
// taken under the feed lock, so a concurrent Publish lands after it. The
// caller must invoke the returned cancel function to avoid leaks.
func (f *Feed) Subscribe(snapshot func() domain.Standings) (<-chan domain.Standings, func()) {
	ch := make(chan domain.Standings, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	ch <- snapshot()
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber without blocking.
func (f *Feed) Publish(standings domain.Standings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- standings:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- standings
		}
	}
}
