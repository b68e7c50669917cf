package assistant

import (
	"context"
	"sync"
)

// TokenStream is a finite, single-consumption sequence of text
// increments. Chunks arrive in model order; ranging over Chunks until
// it closes consumes the whole response. Cancel drops any increments
// still in flight.
type TokenStream struct {
	ch   chan string
	done chan struct{}

	cancelOnce sync.Once
	closeOnce  sync.Once

	mu  sync.Mutex
	err error
}

func newTokenStream() *TokenStream {
	return &TokenStream{
		ch:   make(chan string, 16),
		done: make(chan struct{}),
	}
}

// newStaticStream returns an already-complete stream carrying a single
// chunk, used for canned fallback responses.
func newStaticStream(text string) *TokenStream {
	s := newTokenStream()
	s.ch <- text
	s.close()
	return s
}

// Chunks returns the channel of text increments. It is closed when the
// stream ends, fails, or is cancelled.
func (s *TokenStream) Chunks() <-chan string {
	return s.ch
}

// Cancel stops the stream. Increments still in flight from the
// producer are discarded rather than delivered to a superseded
// consumer.
func (s *TokenStream) Cancel() {
	s.cancelOnce.Do(func() {
		close(s.done)
	})
}

// Err reports why the stream ended early, if it did. Valid once Chunks
// has been closed.
func (s *TokenStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// deliver forwards one increment, reporting false when the stream was
// cancelled or the context ended. Only the producing goroutine calls
// deliver, fail and close, so the chunk channel is closed exactly once
// and never concurrently with a send.
func (s *TokenStream) deliver(ctx context.Context, text string) bool {
	// Check cancellation first: with buffer room in the channel both
	// select cases would be ready and the choice would be random.
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case <-s.done:
		return false
	case <-ctx.Done():
		s.fail(ctx.Err())
		return false
	case s.ch <- text:
		return true
	}
}

func (s *TokenStream) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *TokenStream) close() {
	s.closeOnce.Do(func() {
		close(s.ch)
	})
}
