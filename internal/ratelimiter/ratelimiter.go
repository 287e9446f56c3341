package ratelimiter

import (
	"context"
	"log/slog"
	"time"
)

const queueSize = 64

type request struct {
	done chan error
}

// Limiter grants permission to issue generation requests no closer together
// than a fixed interval. Requests queue up and are granted in arrival order.
type Limiter struct {
	queue     chan request
	interval  time.Duration
	lastGrant time.Time
	ctx       context.Context
	cancel    context.CancelFunc
	log       *slog.Logger
}

func New(interval time.Duration, log *slog.Logger) *Limiter {
	ctx, cancel := context.WithCancel(context.Background())

	l := &Limiter{
		queue:    make(chan request, queueSize),
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}

	go l.processQueue()

	return l
}

// Acquire blocks until the caller may issue the next request, the caller's
// context is done, or the limiter is stopped.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}

	req := request{done: make(chan error, 1)}

	select {
	case l.queue <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return l.ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) Stop() {
	l.cancel()
}

func (l *Limiter) processQueue() {
	for {
		select {
		case req := <-l.queue:
			l.handleRequest(req)
		case <-l.ctx.Done():
			// The queue is never closed; a concurrent Acquire may still be
			// sending and is unblocked by its own l.ctx.Done case.
			for {
				select {
				case req := <-l.queue:
					req.done <- l.ctx.Err()
				default:
					return
				}
			}
		}
	}
}

func (l *Limiter) handleRequest(req request) {
	if !l.lastGrant.IsZero() {
		delay := getDelay(l.interval, l.lastGrant)

		if delay > 0 {
			l.log.DebugContext(l.ctx, "Rate limiting generation request",
				"delay", delay,
				"queueLen", len(l.queue))

			select {
			case <-time.After(delay):
			case <-l.ctx.Done():
				req.done <- l.ctx.Err()

				return
			}
		}
	}

	l.lastGrant = time.Now()
	req.done <- nil
}

func getDelay(interval time.Duration, lastGrant time.Time) time.Duration {
	return max(interval-time.Since(lastGrant), 0)
}
