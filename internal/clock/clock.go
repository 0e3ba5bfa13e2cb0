// Package clock abstracts wall time and cancellable scheduled work so the
// session timer and deferred loan deposits can be driven by a fake in tests.
package clock

import (
	"sync"
	"time"
)

// Task is a handle to scheduled work. Stop is safe to call more than once.
// A callback already in flight when Stop is called may still complete.
type Task interface {
	Stop()
}

type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Task
	Every(d time.Duration, fn func()) Task
}

type Real struct{}

func NewReal() *Real {
	return &Real{}
}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

func (Real) AfterFunc(d time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(d, fn)}
}

func (Real) Every(d time.Duration, fn func()) Task {
	t := &tickerTask{stop: make(chan struct{})}
	go t.run(d, fn)
	return t
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Stop() {
	t.t.Stop()
}

type tickerTask struct {
	stop chan struct{}
	once sync.Once
}

func (t *tickerTask) run(d time.Duration, fn func()) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			fn()
		}
	}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() { close(t.stop) })
}
