// Package dispatcher is a small FIFO task queue standing in for the embedding
// daemon's event loop. Tasks posted are never run inline.
package dispatcher

import (
	"context"
	"sync"
)

// Queue collects posted tasks until they are drained.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

func New() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// PostTask appends task to the queue and wakes a running loop.
func (q *Queue) PostTask(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// DispatchPending runs queued tasks in FIFO order on the calling goroutine,
// including tasks posted while draining, and returns how many ran.
func (q *Queue) DispatchPending() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		ran++
	}
}

// Run drains the queue each time a task is posted until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	q.DispatchPending()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
			q.DispatchPending()
		}
	}
}
