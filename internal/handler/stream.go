package handler

import (
	"sync"

	"offplanbot/internal/model"
)

// messageQueue decouples the chat service from a streaming client. Push never
// blocks, so a slow client cannot hold up the session lock the service keeps
// while it appends messages; a single writer goroutine drains the queue in order.
type messageQueue struct {
	mu      sync.Mutex
	pending []model.Message
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

func newMessageQueue(write func(model.Message)) *messageQueue {
	q := &messageQueue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.run(write)
	return q
}

// Push enqueues a message for the writer
func (q *messageQueue) Push(msg model.Message) {
	q.mu.Lock()
	q.pending = append(q.pending, msg)
	q.mu.Unlock()
	q.signal()
}

// Close waits until every queued message has been written
func (q *messageQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
	<-q.done
}

func (q *messageQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *messageQueue) run(write func(model.Message)) {
	defer close(q.done)
	for range q.wake {
		q.mu.Lock()
		batch, closed := q.pending, q.closed
		q.pending = nil
		q.mu.Unlock()

		for _, msg := range batch {
			write(msg)
		}
		if closed {
			return
		}
	}
}
