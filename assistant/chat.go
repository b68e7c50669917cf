package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/mybussiness/bazaar/domain"
)

// systemInstruction builds the role-specific persona for a chat session.
func systemInstruction(role domain.Role, userName, businessName string) string {
	switch role {
	case domain.RoleSuperAdmin:
		return fmt.Sprintf("You are the MY BUSSINESS Platform Guru for %s. You help manage the entire Pakistani business ecosystem. Provide high-level insights on business approvals, platform revenue, and strategic growth across Pakistan.", userName)
	case domain.RoleBusinessAdmin, domain.RoleManager:
		return fmt.Sprintf("You are a localized Business Growth Expert in Pakistan. Help %s (owner of %s) manage inventory on MY BUSSINESS, optimize Pakistani sales, explain bargaining tactics, and create marketing campaigns for PKR transactions.", userName, businessName)
	case domain.RoleStaff:
		return fmt.Sprintf("You are an Operations Efficiency Assistant for MY BUSSINESS. Help staff members like %s with task management, explaining order lifecycle, and improving customer service speed in a busy Pakistani retail/service environment.", userName)
	default:
		return fmt.Sprintf("You are a friendly Pakistani Shopping Assistant for %s on MY BUSSINESS. Help find the best deals, explain how to bargain effectively on the platform, track orders, and discover new verified shops in Peshawar, Lahore, or Karachi.", userName)
	}
}

// Session is a role-aware chat with the assistant. History accumulates
// across sends so the model keeps conversational context.
type Session struct {
	client      *Client
	system      string
	metricsHook func(degraded bool)

	mu      sync.Mutex
	history []Message
	active  *TokenStream
}

// NewChatSession opens a chat session for a user. businessName may be
// empty for roles without a business.
func (a *Assistant) NewChatSession(role domain.Role, userName, businessName string) *Session {
	return &Session{
		client: a.client,
		system: systemInstruction(role, userName, businessName),
		metricsHook: func(degraded bool) {
			if a.metrics == nil {
				return
			}
			a.metrics.AssistantRequests.WithLabelValues("chat").Inc()
			if degraded {
				a.metrics.AssistantFallbacks.WithLabelValues("chat").Inc()
			}
		},
	}
}

// Send submits a user message and returns the reply as a token stream.
// A new Send cancels any stream still open from the previous one, so
// late chunks of a superseded reply are dropped. Sending on a nil
// session (chat not yet created) is a no-op yielding an empty,
// already-closed stream.
func (s *Session) Send(ctx context.Context, message string) *TokenStream {
	if s == nil {
		empty := newTokenStream()
		empty.close()
		return empty
	}

	s.mu.Lock()
	if s.active != nil {
		s.active.Cancel()
	}
	s.history = append(s.history, Message{Role: "user", Content: message})
	messages := append([]Message(nil), s.history...)
	s.mu.Unlock()

	inner, err := s.client.Stream(ctx, s.system, messages)
	if err != nil {
		if s.metricsHook != nil {
			s.metricsHook(true)
		}
		fallback := newStaticStream(FallbackChat)
		s.setActive(fallback)
		return fallback
	}
	if s.metricsHook != nil {
		s.metricsHook(false)
	}

	out := s.relay(inner)
	s.setActive(out)
	return out
}

// History returns a copy of the accumulated messages.
func (s *Session) History() []Message {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}

func (s *Session) setActive(stream *TokenStream) {
	s.mu.Lock()
	s.active = stream
	s.mu.Unlock()
}

// relay forwards chunks to a fresh stream while accumulating the full
// reply, which is appended to the history once the model finishes.
// Cancelling the outer stream cancels the inner one.
func (s *Session) relay(inner *TokenStream) *TokenStream {
	out := newTokenStream()

	go func() {
		defer out.close()
		var full string

		for chunk := range inner.Chunks() {
			full += chunk
			if !out.deliver(context.Background(), chunk) {
				inner.Cancel()
				break
			}
		}
		// Drain so the producer is never blocked after cancellation.
		for range inner.Chunks() {
		}

		if err := inner.Err(); err != nil {
			out.fail(err)
		}
		if full != "" {
			s.mu.Lock()
			s.history = append(s.history, Message{Role: "assistant", Content: full})
			s.mu.Unlock()
		}
	}()

	return out
}
