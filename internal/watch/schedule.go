package watch

import (
	"context"
	"sync"
	"time"
)

// debouncer calls fn once triggers have been quiet for delay.
type debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	fn      func()
	stopped bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// scheduler runs jobs one at a time. Requests made while a job runs collapse
// into a single pending run.
type scheduler struct {
	requests chan struct{}
}

func newScheduler() *scheduler {
	return &scheduler{requests: make(chan struct{}, 1)}
}

func (s *scheduler) request() {
	select {
	case s.requests <- struct{}{}:
	default:
	}
}

func (s *scheduler) run(ctx context.Context, job func(context.Context)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.requests:
			if ctx.Err() != nil {
				return
			}
			job(ctx)
		}
	}
}
