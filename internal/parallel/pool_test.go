package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var mu sync.Mutex
	seen := make(map[int]bool)

	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			counter.Add(1)
			mu.Lock()
			seen[i] = true
			mu.Unlock()
			return nil
		}
	}

	if err := pool.Run(context.Background(), jobs); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
	for i := range jobs {
		if !seen[i] {
			t.Errorf("job %d did not run", i)
		}
	}
}

func TestWorkerPool_Run_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := pool.Run(context.Background(), nil); err != nil {
		t.Errorf("Run(nil) error = %v", err)
	}
}

func TestWorkerPool_Run_Error(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	errBoom := errors.New("boom")
	var after atomic.Int64

	jobs := []Job{
		func(context.Context) error { return errBoom },
		func(context.Context) error { after.Add(1); return nil },
		func(context.Context) error { after.Add(1); return nil },
	}

	err := pool.Run(context.Background(), jobs)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, should not report the induced cancellation", err)
	}
	// one worker runs jobs in order, so the failure cancels the rest
	if n := after.Load(); n != 0 {
		t.Errorf("%d jobs ran after the failure", n)
	}
}

func TestWorkerPool_Run_ParentCanceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	jobs := []Job{
		func(context.Context) error { ran.Add(1); return nil },
		func(context.Context) error { ran.Add(1); return nil },
	}
	if err := pool.Run(ctx, jobs); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d jobs ran with a canceled context", ran.Load())
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("pool running after Close")
	}
	err := pool.Run(context.Background(), []Job{func(context.Context) error { return nil }})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Run() on closed pool error = %v, want ErrClosed", err)
	}
}

func TestWorkerPool_CloseDuringRun(t *testing.T) {
	for range 200 {
		pool := NewWorkerPool(2)
		jobs := make([]Job, 64)
		var ran atomic.Int32
		for i := range jobs {
			jobs[i] = func(context.Context) error {
				ran.Add(1)
				return nil
			}
		}

		result := make(chan error, 1)
		go func() { result <- pool.Run(context.Background(), jobs) }()
		go pool.Close()

		select {
		case err := <-result:
			switch {
			case errors.Is(err, ErrClosed):
				if ran.Load() != 0 {
					t.Fatalf("Run() = ErrClosed after running %d jobs", ran.Load())
				}
			case err != nil:
				t.Fatalf("Run() error = %v", err)
			case ran.Load() != int32(len(jobs)):
				t.Fatalf("Run() ran %d of %d jobs", ran.Load(), len(jobs))
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Run() hung while the pool closed")
		}
		pool.Close()
	}
}
