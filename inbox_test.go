package mediactl

import (
	"sync"
	"testing"
)

func previewFrame(ts int64) frameMessage {
	return frameMessage{kind: FramePreview, frame: &VideoFrame{Timestamp: ts}}
}

func outputFrame(ts int64) frameMessage {
	return frameMessage{kind: FrameOutput, frame: &VideoFrame{Timestamp: ts}}
}

func TestInbox_CoalesceKeepsLatestFrame(t *testing.T) {
	var in inbox
	for i := 0; i < 15; i++ {
		in.push(previewFrame(int64(i)))
	}

	batch := in.drainAll()
	batch, latest := takeLatestFrame(batch, FramePreview)

	if latest == nil {
		t.Fatal("expected a coalesced preview frame")
	}
	if latest.frame.Timestamp != 14 {
		t.Errorf("coalesced frame timestamp = %d, want 14", latest.frame.Timestamp)
	}
	if len(batch) != 0 {
		t.Errorf("batch has %d leftover messages, want 0", len(batch))
	}
}

func TestInbox_CoalescePreservesOtherMessages(t *testing.T) {
	var in inbox
	in.push(statusMessage{status: Status{ErrorCode: 1}})
	in.push(previewFrame(1))
	in.push(intensityMessage{value: 10})
	in.push(previewFrame(2))
	in.push(statusMessage{status: Status{ErrorCode: 2}})
	in.push(intensityMessage{value: 20})

	batch := in.drainAll()
	batch, frame := takeLatestFrame(batch, FramePreview)
	batch, level := takeLatestIntensity(batch)

	if frame == nil || frame.frame.Timestamp != 2 {
		t.Fatalf("coalesced frame = %+v, want timestamp 2", frame)
	}
	if level == nil || level.value != 20 {
		t.Fatalf("coalesced intensity = %+v, want 20", level)
	}
	if len(batch) != 2 {
		t.Fatalf("batch has %d messages after coalescing, want 2", len(batch))
	}
	for i, want := range []int{1, 2} {
		sm, ok := batch[i].(statusMessage)
		if !ok || sm.status.ErrorCode != want {
			t.Errorf("batch[%d] = %+v, want status %d", i, batch[i], want)
		}
	}
}

func TestInbox_FrameRetentionBoundPerKind(t *testing.T) {
	var in inbox
	for i := 0; i < 25; i++ {
		in.push(previewFrame(int64(i)))
		if i < 5 {
			in.push(outputFrame(int64(100 + i)))
		}
	}

	batch := in.drainAll()

	var previews, outputs []int64
	for _, msg := range batch {
		fm, ok := msg.(frameMessage)
		if !ok {
			continue
		}
		switch fm.kind {
		case FramePreview:
			previews = append(previews, fm.frame.Timestamp)
		case FrameOutput:
			outputs = append(outputs, fm.frame.Timestamp)
		}
	}

	if len(previews) != MaxQueuedFrames {
		t.Errorf("queued preview frames = %d, want %d", len(previews), MaxQueuedFrames)
	}
	// Oldest previews evicted, newest retained.
	for i, ts := range previews {
		if want := int64(15 + i); ts != want {
			t.Errorf("previews[%d] = %d, want %d", i, ts, want)
		}
	}
	// The output kind never pays for preview overflow.
	if len(outputs) != 5 {
		t.Errorf("queued output frames = %d, want 5", len(outputs))
	}
}

func TestInbox_OrderPreservedWithoutCoalescedKinds(t *testing.T) {
	var in inbox
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			in.push(statusMessage{status: Status{ErrorCode: i}})
		} else {
			in.push(recordMessage{record: Record{Enabled: i%4 == 1}})
		}
	}

	batch := in.drainAll()
	if len(batch) != 20 {
		t.Fatalf("drained %d messages, want 20", len(batch))
	}
	for i, msg := range batch {
		if i%2 == 0 {
			sm, ok := msg.(statusMessage)
			if !ok || sm.status.ErrorCode != i {
				t.Errorf("batch[%d] = %+v, want status %d", i, msg, i)
			}
		} else {
			if _, ok := msg.(recordMessage); !ok {
				t.Errorf("batch[%d] = %+v, want record", i, msg)
			}
		}
	}
}

func TestInbox_WakeCoalescing(t *testing.T) {
	var in inbox

	if !in.push(stopMessage{}) {
		t.Error("first push should request a wake")
	}
	if in.push(stopMessage{}) {
		t.Error("second push before drain should not request a wake")
	}

	in.drainAll()
	if !in.push(stopMessage{}) {
		t.Error("push after drain should request a wake again")
	}
}

func TestInbox_TakeFirstClearsWakeWhenEmpty(t *testing.T) {
	var in inbox
	in.push(stopMessage{})
	in.push(recordMessage{})

	if msg, ok := in.takeFirst(); !ok {
		t.Fatal("takeFirst should return the first message")
	} else if _, isStop := msg.(stopMessage); !isStop {
		t.Fatalf("takeFirst returned %+v, want stop", msg)
	}

	// Still non-empty: pushes stay silent.
	if in.push(stopMessage{}) {
		t.Error("push while backlog remains should not request a wake")
	}

	in.takeFirst()
	in.takeFirst()
	if _, ok := in.takeFirst(); ok {
		t.Fatal("takeFirst on empty inbox should report empty")
	}
	if !in.push(stopMessage{}) {
		t.Error("push after the queue emptied should request a wake")
	}
}

func TestInbox_ResumeWake(t *testing.T) {
	var in inbox
	in.push(stopMessage{})
	in.takeFirst() // pop the only message; wake still pending

	if in.resumeWake() {
		t.Error("resumeWake on empty inbox should report no work")
	}
	if !in.push(stopMessage{}) {
		t.Error("push after resumeWake cleared the wake should request one")
	}

	if !in.resumeWake() {
		t.Error("resumeWake with backlog should report work")
	}
}

func TestInbox_ConcurrentProducers(t *testing.T) {
	const (
		producers   = 4
		perProducer = 250
	)

	var in inbox
	var wg sync.WaitGroup

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				in.push(statusMessage{status: Status{ErrorCode: p*perProducer + i}})
			}
		}(p)
	}
	// One more goroutine spraying coalescable traffic in between.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 300; i++ {
			in.push(previewFrame(int64(i)))
			in.push(intensityMessage{value: i})
		}
	}()
	wg.Wait()

	batch := in.drainAll()
	batch, _ = takeLatestFrame(batch, FramePreview)
	batch, _ = takeLatestIntensity(batch)

	seen := make(map[int]bool)
	lastPerProducer := make(map[int]int)
	for _, msg := range batch {
		sm, ok := msg.(statusMessage)
		if !ok {
			t.Fatalf("unexpected message after coalescing: %+v", msg)
		}
		code := sm.status.ErrorCode
		if seen[code] {
			t.Fatalf("status %d drained twice", code)
		}
		seen[code] = true

		p := code / perProducer
		if prev, ok := lastPerProducer[p]; ok && code <= prev {
			t.Fatalf("producer %d order violated: %d after %d", p, code, prev)
		}
		lastPerProducer[p] = code
	}
	if len(seen) != producers*perProducer {
		t.Errorf("drained %d statuses, want %d", len(seen), producers*perProducer)
	}
}
