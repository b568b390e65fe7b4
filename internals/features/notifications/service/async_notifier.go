package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"kreditku_backend/internals/configs"
	orderModel "kreditku_backend/internals/features/orders/model"
)

/* =======================================================================
   AsyncNotifier: fire-and-forget, retry dengan backoff, lalu drop + log.
======================================================================= */

type AsyncNotifier struct {
	dir  Directory
	sink Sink

	attempts int
	backoff  time.Duration
	timeout  time.Duration

	sem *semaphore.Weighted
	wg  sync.WaitGroup

	// mu menjaga closed + wg.Add supaya Close tidak balapan dengan Notify
	mu     sync.Mutex
	closed bool
}

type NotifierOption func(*AsyncNotifier)

func WithRetry(attempts int, backoff time.Duration) NotifierOption {
	return func(n *AsyncNotifier) {
		if attempts > 0 {
			n.attempts = attempts
		}
		n.backoff = backoff
	}
}

// WithConcurrency membatasi jumlah pengiriman paralel.
func WithConcurrency(max int64) NotifierOption {
	return func(n *AsyncNotifier) {
		if max > 0 {
			n.sem = semaphore.NewWeighted(max)
		}
	}
}

func NewAsyncNotifier(dir Directory, sink Sink, opts ...NotifierOption) *AsyncNotifier {
	n := &AsyncNotifier{
		dir:      dir,
		sink:     sink,
		attempts: 3,
		backoff:  200 * time.Millisecond,
		timeout:  10 * time.Second,
		sem:      semaphore.NewWeighted(8),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Notify tidak pernah memblokir pemanggil dan tidak mengembalikan error.
func (n *AsyncNotifier) Notify(ctx context.Context, ev orderModel.Event) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		configs.Log.Warn("notifier sudah ditutup, event di-drop",
			zap.String("order_id", ev.OrderID.String()), zap.String("kind", string(ev.Kind)))
		return
	}
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()

		if err := n.sem.Acquire(ctx, 1); err != nil {
			configs.Log.Error("notifikasi di-drop (antrian penuh)", zap.Error(err))
			return
		}
		defer n.sem.Release(1)
		n.deliver(ctx, ev)
	}()
}

func (n *AsyncNotifier) deliver(ctx context.Context, ev orderModel.Event) {
	var err error
retry:
	for attempt := 1; attempt <= n.attempts; attempt++ {
		if err = n.once(ctx, ev); err == nil {
			return
		}
		configs.Log.Warn("kirim notifikasi gagal",
			zap.Int("attempt", attempt),
			zap.String("order_id", ev.OrderID.String()),
			zap.Error(err))

		if attempt == n.attempts {
			break
		}
		// backoff linear: 1x, 2x, ...
		select {
		case <-ctx.Done():
			err = errors.Join(err, ctx.Err())
			break retry
		case <-time.After(n.backoff * time.Duration(attempt)):
		}
	}
	configs.Log.Error("notifikasi di-drop setelah retry",
		zap.String("order_id", ev.OrderID.String()),
		zap.String("kind", string(ev.Kind)),
		zap.String("status", string(ev.NewStatus)),
		zap.Error(err))
}

func (n *AsyncNotifier) once(ctx context.Context, ev orderModel.Event) error {
	ids, err := Recipients(ctx, n.dir, ev)
	if err != nil {
		return err
	}
	return n.sink.Insert(ctx, BuildRows(ev, ids))
}

// Close menolak event baru lalu menunggu pengiriman yang sedang jalan.
func (n *AsyncNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
