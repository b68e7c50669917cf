package assistant_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybussiness/bazaar/assistant"
	"github.com/mybussiness/bazaar/domain"
)

func sseServer(t *testing.T, chunks []string, captured *[]json.RawMessage) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			var req struct {
				Messages []json.RawMessage `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			*captured = req.Messages
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func drain(s *assistant.TokenStream) string {
	var out string
	for chunk := range s.Chunks() {
		out += chunk
	}
	return out
}

func TestSession_SendStreamsReply(t *testing.T) {
	server := sseServer(t, []string{"Wa alaikum ", "salaam!"}, nil)
	defer server.Close()

	a := assistant.New(newTestClient(server.URL))
	session := a.NewChatSession(domain.RoleCustomer, "ABDULLAH", "")

	stream := session.Send(context.Background(), "salaam")
	assert.Equal(t, "Wa alaikum salaam!", drain(stream))
	assert.NoError(t, stream.Err())
}

func TestSession_HistoryAccumulates(t *testing.T) {
	server := sseServer(t, []string{"Reply one"}, nil)
	defer server.Close()

	a := assistant.New(newTestClient(server.URL))
	session := a.NewChatSession(domain.RoleBusinessAdmin, "Khan", "KHAN BUSSINESS Peshawar")

	drain(session.Send(context.Background(), "How do I grow sales?"))

	// The assistant reply is appended once the stream finishes.
	require.Eventually(t, func() bool {
		return len(session.History()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	history := session.History()
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "How do I grow sales?", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "Reply one", history[1].Content)
}

func TestSession_SecondSendCarriesHistory(t *testing.T) {
	var captured []json.RawMessage
	server := sseServer(t, []string{"ok"}, &captured)
	defer server.Close()

	a := assistant.New(newTestClient(server.URL))
	session := a.NewChatSession(domain.RoleCustomer, "ABDULLAH", "")

	drain(session.Send(context.Background(), "first"))
	require.Eventually(t, func() bool {
		return len(session.History()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	drain(session.Send(context.Background(), "second"))

	// system + first + reply + second
	assert.Len(t, captured, 4)
}

func TestSession_FallsBackWhenStreamCannotOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	a := assistant.New(newTestClient(server.URL))
	session := a.NewChatSession(domain.RoleStaff, "DANYIAL HOTI", "")

	stream := session.Send(context.Background(), "help")
	assert.Equal(t, assistant.FallbackChat, drain(stream))
}

func TestSession_NilSessionSendIsNoop(t *testing.T) {
	var session *assistant.Session

	stream := session.Send(context.Background(), "anyone there?")
	require.NotNil(t, stream)
	assert.Empty(t, drain(stream))
	assert.Nil(t, session.History())
}

func TestTokenStream_CancelDropsLateChunks(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"early\"}}]}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"late\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stream, err := client.Stream(context.Background(), "", []assistant.Message{
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)

	first := <-stream.Chunks()
	assert.Equal(t, "early", first)

	stream.Cancel()
	close(release)

	// After cancellation the channel closes without the late chunk.
	for chunk := range stream.Chunks() {
		assert.NotEqual(t, "late", chunk)
	}
}
