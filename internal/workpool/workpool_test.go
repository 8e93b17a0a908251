package workpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/go-country-browser/internal/channels"
	"github.com/AbdulWasayUl/go-country-browser/internal/workpool"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

func waitForJobs(t *testing.T, ch *channels.Channels) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		ch.WG.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for jobs to complete")
	}
}

func TestWorkerPool_New(t *testing.T) {
	ch := &channels.Channels{
		DataRequest: make(chan models.DataRequest, 10),
		WG:          &sync.WaitGroup{},
	}
	workerCount := 3

	wp := workpool.New(ch, workerCount)

	if wp == nil {
		t.Fatal("Expected WorkerPool to be created")
	}
	if wp.WorkerCount != workerCount {
		t.Errorf("Expected WorkerCount %d, got %d", workerCount, wp.WorkerCount)
	}
	if wp.Channels != ch {
		t.Error("Expected Channels to match")
	}
}

func TestWorkerPool_SingleJob(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	wp.Start(ctx)
	defer wp.Stop()

	var steps []string
	var mu sync.Mutex
	step := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		steps = append(steps, name)
	}

	err := ch.Submit(ctx, models.DataRequest{
		Service: "test",
		ID:      "all",
		FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
			step("fetch:" + id)
			return []byte("data"), nil
		},
		ParseFunc: func(data []byte) (interface{}, error) {
			step("parse:" + string(data))
			return "parsed", nil
		},
		StoreFunc: func(ctx context.Context, d interface{}) error {
			step("store:" + d.(string))
			return nil
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	waitForJobs(t, ch)

	mu.Lock()
	defer mu.Unlock()
	want := []string{"fetch:all", "parse:data", "store:parsed"}
	if len(steps) != len(want) {
		t.Fatalf("Expected steps %v, got %v", want, steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], steps[i])
		}
	}
}

func TestWorkerPool_MultipleJobs(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	wp.Start(ctx)
	defer wp.Stop()

	var completed int32
	numJobs := 5
	for i := 0; i < numJobs; i++ {
		err := ch.Submit(ctx, models.DataRequest{
			ID:        "job",
			FetchFunc: func(ctx context.Context, id string) ([]byte, error) { return []byte("data"), nil },
			ParseFunc: func(data []byte) (interface{}, error) { return "result", nil },
			StoreFunc: func(ctx context.Context, d interface{}) error {
				atomic.AddInt32(&completed, 1)
				return nil
			},
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	waitForJobs(t, ch)

	if c := atomic.LoadInt32(&completed); int(c) != numJobs {
		t.Errorf("Expected %d jobs completed, got %d", numJobs, c)
	}
}

func TestWorkerPool_StageErrors(t *testing.T) {
	tests := []struct {
		name        string
		fetchErr    error
		parseErr    error
		storeErr    error
		wantParsed  bool
		wantStored  bool
		panicInStep bool
	}{
		{name: "fetch error stops pipeline", fetchErr: errors.New("fetch failed")},
		{name: "parse error skips store", parseErr: errors.New("parse failed"), wantParsed: true},
		{name: "store error is logged", storeErr: errors.New("store failed"), wantParsed: true, wantStored: true},
		{name: "panic is recovered", panicInStep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := channels.New()
			wp := workpool.New(ch, 1)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			wp.Start(ctx)
			defer wp.Stop()

			var parsed, stored atomic.Bool
			err := ch.Submit(ctx, models.DataRequest{
				ID: "test",
				FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
					if tt.panicInStep {
						panic("unexpected")
					}
					return []byte("data"), tt.fetchErr
				},
				ParseFunc: func(data []byte) (interface{}, error) {
					parsed.Store(true)
					return "parsed", tt.parseErr
				},
				StoreFunc: func(ctx context.Context, d interface{}) error {
					stored.Store(true)
					return tt.storeErr
				},
			})
			if err != nil {
				t.Fatalf("submit failed: %v", err)
			}

			waitForJobs(t, ch)

			if parsed.Load() != tt.wantParsed {
				t.Errorf("parse called = %v, want %v", parsed.Load(), tt.wantParsed)
			}
			if stored.Load() != tt.wantStored {
				t.Errorf("store called = %v, want %v", stored.Load(), tt.wantStored)
			}
		})
	}
}

func TestWorkerPool_NoJobs(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wp.Start(ctx)
	wp.Stop()

	// WG.Wait should return immediately with no jobs
	waitForJobs(t, ch)
}
