package web

// limiter.go bounds concurrent snapshot downloads.
//
// A snapshot encodes the whole table into memory before it is written, so
// parallel downloads multiply memory use. Requests beyond the limit wait up
// to maxWait and then fail with ErrTooManySnapshots.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManySnapshots is returned when every snapshot slot stays busy for
// the whole wait period.
var ErrTooManySnapshots = errors.New("too many concurrent snapshot downloads")

// DefaultMaxSnapshots is the default number of parallel snapshot encodes.
const DefaultMaxSnapshots = 2

// DefaultSnapshotWait is how long a request waits for a free slot.
const DefaultSnapshotWait = 5 * time.Second

type snapshotLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.Mutex
	active int
}

func newSnapshotLimiter(maxConcurrent int, maxWait time.Duration) *snapshotLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxSnapshots
	}
	if maxWait <= 0 {
		maxWait = DefaultSnapshotWait
	}
	return &snapshotLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// acquire takes a slot. The caller must release it.
func (l *snapshotLimiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManySnapshots
	}
}

func (l *snapshotLimiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.semaphore
}

func (l *snapshotLimiter) activeCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
