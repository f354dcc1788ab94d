package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrQueueFull = errors.New("notification queue full")
	ErrClosed    = errors.New("notifier closed")
)

// Async hands notifications to a background worker so request handlers
// never wait on a delivery channel. When the queue is full the notification
// is dropped and ErrQueueFull returned.
type Async struct {
	next    Notifier
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Notification
	done   chan struct{}
}

func NewAsync(next Notifier, queueSize int, timeout time.Duration, log *slog.Logger) *Async {
	if queueSize <= 0 {
		queueSize = 64
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	a := &Async{
		next:    next,
		timeout: timeout,
		log:     log.With(slog.String("component", "notify.async")),
		queue:   make(chan Notification, queueSize),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) Notify(ctx context.Context, n Notification) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	select {
	case a.queue <- n:
		return nil
	default:
		a.log.Warn("notification dropped", slog.String("kind", string(n.Kind)), slog.Int("queue_size", cap(a.queue)))
		return ErrQueueFull
	}
}

func (a *Async) run() {
	defer close(a.done)
	for n := range a.queue {
		a.deliver(n)
	}
}

func (a *Async) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.next.Notify(ctx, n); err != nil {
		a.log.Warn("notification delivery failed", slog.String("kind", string(n.Kind)), slog.Any("err", err))
		return
	}
	a.log.Debug("notification delivered", slog.String("kind", string(n.Kind)))
}

// Close stops accepting notifications and waits for queued ones to be
// delivered or for ctx to end.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
