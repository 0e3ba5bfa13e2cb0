package testutil

import (
	"sync"
	"time"

	"github.com/josh-kwaku/bankist/internal/clock"
)

var Epoch = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

// ManualScheduler is a clock.Scheduler whose time only moves on Advance.
// Callbacks run synchronously on the goroutine calling Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	due     time.Time
	every   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.stopped = true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: Epoch}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) clock.Task {
	return s.add(d, 0, fn)
}

func (s *ManualScheduler) Every(d time.Duration, fn func()) clock.Task {
	return s.add(d, d, fn)
}

func (s *ManualScheduler) add(d, every time.Duration, fn func()) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{s: s, due: s.now.Add(d), every: every, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves time forward by d, firing every task that falls due on the
// way in due-time order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.every > 0 {
			next.due = next.due.Add(next.every)
		} else {
			next.stopped = true
		}
		s.mu.Unlock()
		next.fn()
		s.mu.Lock()
	}
	s.now = target
	s.prune()
	s.mu.Unlock()
}

// Pending counts tasks that are scheduled and not yet stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(limit time.Time) *manualTask {
	var next *manualTask
	for _, t := range s.tasks {
		if t.stopped || t.due.After(limit) {
			continue
		}
		if next == nil || t.due.Before(next.due) {
			next = t
		}
	}
	return next
}

func (s *ManualScheduler) prune() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.tasks = live
}
