package mediactl

import "sync"

// MaxQueuedFrames bounds how many frames of one kind may sit in an inbox.
// Queued frames beyond the freshest one are only useful if we ever do
// timestamped playback; until then the bound just caps memory while the
// consumer is slow to drain.
const MaxQueuedFrames = 10

// inbox is a lock-protected, ordered queue of messages owned by its
// receiving side. Producers on any goroutine push; the single consumer
// drains. Wake scheduling is coalesced: push reports true only when the
// consumer needs a new wake, so a burst of pushes costs one wake.
type inbox struct {
	mu          sync.Mutex
	queue       []message
	wakePending bool
}

// push appends msg and reports whether the producer must schedule a wake on
// the consumer. Frame messages are subject to the per-kind retention bound:
// at MaxQueuedFrames the oldest frame of the same kind is evicted first.
func (b *inbox) push(msg message) (wake bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if fm, ok := msg.(frameMessage); ok {
		b.evictIfFull(fm.kind)
	}
	b.queue = append(b.queue, msg)

	if !b.wakePending {
		b.wakePending = true
		return true
	}
	return false
}

// evictIfFull drops the oldest queued frame of kind when the bound is
// reached. Frames of other kinds are never touched. Caller holds mu.
func (b *inbox) evictIfFull(kind FrameKind) {
	count, first := 0, -1
	for i, msg := range b.queue {
		if fm, ok := msg.(frameMessage); ok && fm.kind == kind {
			if first < 0 {
				first = i
			}
			count++
		}
	}
	if count >= MaxQueuedFrames {
		b.queue = append(b.queue[:first], b.queue[first+1:]...)
	}
}

// drainAll moves out the entire backlog and clears the pending wake. The
// caller processes the returned batch outside the lock; holding the lock
// while invoking callbacks would deadlock against producers.
func (b *inbox) drainAll() []message {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.queue
	b.queue = nil
	b.wakePending = false
	return batch
}

// takeFirst pops one message. The worker-side consumer drains one message at
// a time because a lifecycle command must halt the drain mid-batch. When the
// queue is empty the pending wake is cleared so the next push wakes again.
func (b *inbox) takeFirst() (message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		b.wakePending = false
		return nil, false
	}
	msg := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return msg, true
}

// resumeWake reports whether queued work remains when the lifecycle gate
// reopens. When empty it clears the pending wake so the next push schedules
// one; when non-empty the caller schedules the wake itself.
func (b *inbox) resumeWake() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) > 0 {
		b.wakePending = true
		return true
	}
	b.wakePending = false
	return false
}

// len reports the current backlog size.
func (b *inbox) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}
