package realtime

import (
	"context"
	"log/slog"
	"sync"
)

// Task represents a unit of work
type Task func(ctx context.Context) error

// WorkerPool runs fire-and-forget dispatch work (live pushes, counter
// refreshes) off the request path so a slow broker never blocks a handler.
type WorkerPool struct {
	workerCount int
	taskQueue   chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool creates a pool with specified number of workers
func NewWorkerPool(workerCount int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		taskQueue:   make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	slog.Info("dispatch pool started", "workers", wp.workerCount)
}

// Submit adds a task to the queue; tasks are rejected once shutdown begins.
func (wp *WorkerPool) Submit(task Task) {
	select {
	case wp.taskQueue <- task:
	case <-wp.ctx.Done():
		slog.Warn("dispatch pool shutting down, task rejected")
	}
}

// Shutdown cancels in-flight work and waits for the workers to exit. The
// queue is never closed: a Submit racing shutdown must land in the buffer
// or be rejected, not panic on a closed channel.
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.wg.Wait()
	slog.Info("dispatch pool stopped")
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case task := <-wp.taskQueue:
			if err := task(wp.ctx); err != nil {
				slog.Error("dispatch task failed", "error", err)
			}
		case <-wp.ctx.Done():
			return
		}
	}
}
