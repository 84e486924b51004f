// Package scheduler runs tasks on the host's game tick.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/go-logr/logr"
	"go.uber.org/atomic"
)

// TickDuration is the duration of one game tick at 20 ticks per second.
const TickDuration = 50 * time.Millisecond

// Scheduler queues tasks until the host advances the tick with Tick.
// Tasks run on the goroutine calling Tick, in the order they were scheduled.
type Scheduler struct {
	log  logr.Logger
	tick atomic.Uint64 // Incremented with mu held

	mu    sync.Mutex // Protects queue
	queue deque.Deque[*task]
}

type task struct {
	due uint64
	fn  func()
}

// New returns a new Scheduler.
func New(log logr.Logger) *Scheduler {
	return &Scheduler{log: log.WithName("scheduler")}
}

// RunLater runs fn after delay ticks. A delay below 1 runs fn on the next tick.
func (s *Scheduler) RunLater(delay int, fn func()) {
	if fn == nil {
		return
	}
	if delay < 1 {
		delay = 1
	}
	s.mu.Lock()
	s.queue.PushBack(&task{due: s.tick.Load() + uint64(delay), fn: fn})
	s.mu.Unlock()
}

// Tick advances the scheduler by one tick and runs all due tasks.
// It returns the number of tasks run.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	now := s.tick.Inc()
	var due []*task
	for n := s.queue.Len(); n > 0; n-- {
		t := s.queue.PopFront()
		if t.due <= now {
			due = append(due, t)
			continue
		}
		s.queue.PushBack(t)
	}
	s.mu.Unlock()

	for _, t := range due {
		s.run(t)
	}
	return len(due)
}

func (s *Scheduler) run(t *task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(fmt.Errorf("%v", r), "recovered panic in scheduled task")
		}
	}()
	t.fn()
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// CurrentTick returns the number of ticks passed.
func (s *Scheduler) CurrentTick() uint64 { return s.tick.Load() }

// Run calls Tick every interval until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}
