package booking

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled callback.
// Stop prevents future runs and reports whether this call stopped it.
type Task interface {
	Stop() bool
}

// Scheduler runs callbacks later. Callbacks run on their own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
	Every(d time.Duration, fn func()) Task
}

type timeScheduler struct{}

// NewScheduler returns a Scheduler backed by the runtime timers.
func NewScheduler() Scheduler {
	return timeScheduler{}
}

func (timeScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

func (timeScheduler) Every(d time.Duration, fn func()) Task {
	t := &tickerTask{stop: make(chan struct{})}
	go t.run(d, fn)
	return t
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
			// stop wins over a tick that became ready at the same time
			select {
			case <-t.stop:
				return
			default:
			}
			fn()
		}
	}
}

func (t *tickerTask) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.stop)
		stopped = true
	})
	return stopped
}
