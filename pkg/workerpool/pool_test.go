package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_SubmitRunsTask(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Close()

	var ran atomic.Bool
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !ran.Load() {
		t.Error("task did not run")
	}
}

func TestPool_SubmitReturnsTaskError(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Close()

	want := errors.New("boom")
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("Submit error = %v, want %v", err, want)
	}
}

func TestPool_SubmitAsyncDoesNotBlock(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 4}, nil)
	defer p.Close()

	done := make(chan struct{})
	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("SubmitAsync failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async task never ran")
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrWorkerPoolClosed) {
		t.Errorf("SubmitAsync after shutdown = %v, want ErrWorkerPoolClosed", err)
	}
}

func TestPool_QueueFull(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Close()

	block := make(chan struct{})
	// occupy the single worker
	_ = p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		<-block
		return nil
	})
	// fill the queue
	_ = p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		<-block
		return nil
	})

	// give the worker a moment to pick up the first task
	time.Sleep(50 * time.Millisecond)
	_ = p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrWorkerPoolFull) {
		t.Errorf("SubmitAsync on full queue = %v, want ErrWorkerPoolFull", err)
	}
	close(block)
}
