package workerpool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := New(nil, DefaultConfig("test", 2))
	p.Start()
	defer p.Stop()

	var counter int64
	const n = 50
	for i := 0; i < n; i++ {
		if err := p.SubmitFunc(func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt64(&counter) < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := atomic.LoadInt64(&counter); got != n {
		t.Fatalf("expected %d completed tasks, got %d", n, got)
	}
	stats := p.Stats()
	if stats.TasksCompleted != n {
		t.Fatalf("expected stats.TasksCompleted=%d, got %d", n, stats.TasksCompleted)
	}
}

func TestPoolRecoversFromPanic(t *testing.T) {
	p := New(nil, DefaultConfig("test", 1))
	p.Start()
	defer p.Stop()

	done := make(chan struct{})
	if err := p.SubmitFunc(func() error {
		defer close(done)
		panic("boom")
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	<-done
	time.Sleep(10 * time.Millisecond)
	if p.Stats().PanicRecovered != 1 {
		t.Fatalf("expected one recovered panic, got %d", p.Stats().PanicRecovered)
	}
}

func TestSubmitAfterStopFails(t *testing.T) {
	p := New(nil, DefaultConfig("test", 1))
	p.Start()
	_ = p.Stop()
	if err := p.SubmitFunc(func() error { return nil }); err != ErrPoolStopped {
		t.Fatalf("expected ErrPoolStopped, got %v", err)
	}
}
