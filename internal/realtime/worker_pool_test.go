package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_RunsSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()

	var ran atomic.Int32
	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		pool.Submit(func(ctx context.Context) error {
			ran.Add(1)
			wg.Done()
			return nil
		})
	}
	wg.Wait()
	pool.Shutdown()

	assert.Equal(t, int32(5), ran.Load())
}

func TestWorkerPool_SubmitDuringShutdownDoesNotPanic(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()

	// Hammer Submit while Shutdown runs; late submissions must be rejected
	// or buffered, never panic on a closed queue.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			pool.Submit(func(ctx context.Context) error { return nil })
		}
	}()

	pool.Shutdown()
	<-done
}
