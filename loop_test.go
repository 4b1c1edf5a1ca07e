package mediactl

import (
	"sync/atomic"
	"testing"
)

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var got []int
	for i := 0; i < 100; i++ {
		l.Post(func() { got = append(got, i) })
	}
	PostWait(l, func() {})

	if len(got) != 100 {
		t.Fatalf("ran %d tasks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, tasks ran out of order", i, v)
		}
	}
}

func TestLoop_PostWaitCompletes(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	ran := false
	PostWait(l, func() { ran = true })
	if !ran {
		t.Error("PostWait returned before fn ran")
	}
}

func TestLoop_CloseRunsPendingTasks(t *testing.T) {
	l := NewLoop()

	var count atomic.Int32
	for i := 0; i < 50; i++ {
		l.Post(func() { count.Add(1) })
	}
	l.Close()

	if got := count.Load(); got != 50 {
		t.Errorf("ran %d tasks before close, want 50", got)
	}
}

func TestLoop_PostAfterCloseDropped(t *testing.T) {
	l := NewLoop()
	l.Close()

	// Must not panic or run.
	ran := false
	l.Post(func() { ran = true })
	if ran {
		t.Error("task ran after close")
	}
}

func TestLoop_CloseIdempotent(t *testing.T) {
	l := NewLoop()
	l.Close()
	l.Close()
}
