package ratelimiter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	privateChatRate = time.Second
	groupChatRate   = 3 * time.Second
	queueSize       = 1000
)

var ErrStopped = errors.New("rate limiter is stopped")

type request struct {
	ctx      context.Context
	chatID   int64
	send     func(ctx context.Context) error
	response chan error
}

// RateLimiter serialises outgoing Telegram calls and keeps a minimum
// spacing between calls to the same chat.
type RateLimiter struct {
	queue    chan request
	lastSent map[int64]time.Time
	mu       sync.Mutex
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	log      *slog.Logger
}

func New(log *slog.Logger) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		queue:    make(chan request, queueSize),
		lastSent: make(map[int64]time.Time),
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}

	go rl.processQueue()

	return rl
}

// Do queues send for chatID and waits until it has run.
func (rl *RateLimiter) Do(
	ctx context.Context,
	chatID int64,
	send func(ctx context.Context) error,
) error {
	if rl.ctx.Err() != nil {
		return ErrStopped
	}

	req := request{
		ctx:      ctx,
		chatID:   chatID,
		send:     send,
		response: make(chan error, 1),
	}

	select {
	case rl.queue <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-rl.ctx.Done():
		return ErrStopped
	}

	select {
	case err := <-req.response:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-rl.ctx.Done():
		return ErrStopped
	}
}

func (rl *RateLimiter) Stop() {
	rl.cancel()
}

func (rl *RateLimiter) processQueue() {
	for {
		select {
		case req := <-rl.queue:
			rl.handleRequest(req)
		case <-rl.ctx.Done():
			for {
				select {
				case req := <-rl.queue:
					req.response <- ErrStopped
				default:
					return
				}
			}
		}
	}
}

func (rl *RateLimiter) handleRequest(req request) {
	if rl.ctx.Err() != nil {
		req.response <- ErrStopped
		return
	}

	if err := req.ctx.Err(); err != nil {
		req.response <- err
		return
	}

	rl.mu.Lock()
	lastSent, exists := rl.lastSent[req.chatID]
	rl.mu.Unlock()

	if exists {
		delay := getDelay(req.chatID, lastSent, rl.now())

		if delay > 0 {
			rl.log.DebugContext(req.ctx, "Rate limiting message",
				"chatID", req.chatID,
				"delay", delay,
				"queueLen", len(rl.queue))

			select {
			case <-time.After(delay):
			case <-req.ctx.Done():
				req.response <- req.ctx.Err()
				return
			case <-rl.ctx.Done():
				req.response <- ErrStopped
				return
			}
		}
	}

	err := req.send(req.ctx)

	rl.mu.Lock()
	rl.lastSent[req.chatID] = rl.now()
	rl.mu.Unlock()

	req.response <- err
}

func getDelay(chatID int64, lastSent time.Time, now time.Time) time.Duration {
	elapsed := now.Sub(lastSent)

	return max(getRate(chatID)-elapsed, 0)
}

// Group and channel chat IDs are negative.
func getRate(chatID int64) time.Duration {
	if chatID < 0 {
		return groupChatRate
	}
	return privateChatRate
}
