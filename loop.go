package mediactl

import "sync"

// Scheduler posts work to a serialized executor. It is the wake capability
// the hosting environment supplies: Post must never block and must run fn on
// the scheduler's own goroutine, in post order relative to other posts.
//
// Any event loop qualifies; Loop is the in-package implementation used when
// the host has no loop of its own.
type Scheduler interface {
	Post(fn func())
}

// Loop is a goroutine-owned FIFO task runner implementing Scheduler.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
	done   chan struct{}
}

// NewLoop starts a loop on a fresh goroutine.
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Post schedules fn to run on the loop goroutine. It never blocks. Posting
// to a closed loop drops fn.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.cond.Signal()
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.tasks) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return
		}
		batch := l.tasks
		l.tasks = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}

// Close runs all pending tasks, stops the loop goroutine and waits for it to
// exit. Idempotent. Must not be called from the loop goroutine itself.
func (l *Loop) Close() error {
	l.mu.Lock()
	already := l.closed
	l.closed = true
	l.mu.Unlock()
	if !already {
		l.cond.Signal()
	}
	<-l.done
	return nil
}

// PostWait runs fn on s and blocks until it has completed. The single-use
// completion channel enforces the exactly-one-wake contract the
// construction/teardown rendezvous relies on.
func PostWait(s Scheduler, fn func()) {
	done := make(chan struct{})
	s.Post(func() {
		defer close(done)
		fn()
	})
	<-done
}
