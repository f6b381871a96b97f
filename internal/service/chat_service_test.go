package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger keeps service tests quiet.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeProvider records every transcript it is called with and replies (or
// fails) according to its fields.
type fakeProvider struct {
	mu      sync.Mutex
	calls   [][]llm.Message
	reply   string
	err     error
	latency time.Duration
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.mu.Lock()
	snapshot := make([]llm.Message, len(history))
	copy(snapshot, history)
	f.calls = append(f.calls, snapshot)
	f.mu.Unlock()

	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return "", &llm.GatewayError{Provider: "fake", Message: "canceled", Err: ctx.Err()}
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (f *fakeProvider) transcripts() [][]llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]llm.Message, len(f.calls))
	copy(out, f.calls)
	return out
}

func TestChatServiceSendChat(t *testing.T) {
	t.Run("first message creates the session and appends both sides", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: "hello!"}
		svc := NewChatService(history, provider, nopLogger{})

		res, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{
			Message:     "hi",
			SessionName: "trip",
		})
		require.NoError(t, err)

		assert.Equal(t, "trip", res.SessionName)
		assert.Equal(t, constant.ChatMessageRoleUser, res.Sent.Role)
		assert.Equal(t, "hi", res.Sent.Content)
		assert.Equal(t, constant.ChatMessageRoleAssistant, res.Reply.Role)
		assert.Equal(t, "hello!", res.Reply.Content)

		// Gateway saw exactly the single-message transcript
		calls := provider.transcripts()
		require.Len(t, calls, 1)
		require.Len(t, calls[0], 1)
		assert.Equal(t, llm.Message{Role: "user", Content: "hi"}, calls[0][0])

		transcript := history.GetOrCreate("u1", "trip").Transcript()
		require.Len(t, transcript, 2)
		assert.Equal(t, "hi", transcript[0].Content)
		assert.Equal(t, "hello!", transcript[1].Content)
	})

	t.Run("second message replays the full transcript", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: "hello!"}
		svc := NewChatService(history, provider, nopLogger{})

		_, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "hi", SessionName: "trip"})
		require.NoError(t, err)
		_, err = svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "more", SessionName: "trip"})
		require.NoError(t, err)

		calls := provider.transcripts()
		require.Len(t, calls, 2)
		require.Len(t, calls[1], 3)
		assert.Equal(t, "hi", calls[1][0].Content)
		assert.Equal(t, "hello!", calls[1][1].Content)
		assert.Equal(t, "more", calls[1][2].Content)
	})

	t.Run("N successful turns produce 2N alternating messages", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: "ok"}
		svc := NewChatService(history, provider, nopLogger{})

		const n = 5
		for i := 0; i < n; i++ {
			_, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{
				Message:     fmt.Sprintf("msg-%d", i),
				SessionName: "trip",
			})
			require.NoError(t, err)
		}

		transcript := history.GetOrCreate("u1", "trip").Transcript()
		require.Len(t, transcript, 2*n)
		for i, msg := range transcript {
			if i%2 == 0 {
				assert.Equal(t, constant.ChatMessageRoleUser, msg.Role)
				assert.Equal(t, fmt.Sprintf("msg-%d", i/2), msg.Content)
			} else {
				assert.Equal(t, constant.ChatMessageRoleAssistant, msg.Role)
			}
		}
	})

	t.Run("gateway failure leaves no assistant message", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		gwErr := &llm.GatewayError{Provider: "fake", Status: 500, Message: "boom"}
		provider := &fakeProvider{err: gwErr}
		svc := NewChatService(history, provider, nopLogger{})

		_, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "hi", SessionName: "trip"})

		var asGw *llm.GatewayError
		require.ErrorAs(t, err, &asGw)

		transcript := history.GetOrCreate("u1", "trip").Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, constant.ChatMessageRoleUser, transcript[0].Role)
	})

	t.Run("canceled context leaves no assistant message", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: "late", latency: 200 * time.Millisecond}
		svc := NewChatService(history, provider, nopLogger{})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := svc.SendChat(ctx, "u1", &dto.SendChatRequest{Message: "hi", SessionName: "trip"})
		require.Error(t, err)

		transcript := history.GetOrCreate("u1", "trip").Transcript()
		require.Len(t, transcript, 1)
	})

	t.Run("empty reply is a success, not an error", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: ""}
		svc := NewChatService(history, provider, nopLogger{})

		res, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "hi", SessionName: "trip"})
		require.NoError(t, err)
		assert.Equal(t, "", res.Reply.Content)
		assert.Equal(t, 2, history.GetOrCreate("u1", "trip").Len())
	})

	t.Run("concurrent turns on one session serialize", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: "ok", latency: 20 * time.Millisecond}
		svc := NewChatService(history, provider, nopLogger{})

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{
					Message:     fmt.Sprintf("msg-%d", i),
					SessionName: "trip",
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		// Final transcript is a valid serialization: strict user/assistant
		// alternation, nothing lost or duplicated.
		transcript := history.GetOrCreate("u1", "trip").Transcript()
		require.Len(t, transcript, 4)
		for i, msg := range transcript {
			if i%2 == 0 {
				assert.Equal(t, constant.ChatMessageRoleUser, msg.Role)
			} else {
				assert.Equal(t, constant.ChatMessageRoleAssistant, msg.Role)
			}
		}

		// The second call must have seen the first pair already committed.
		calls := provider.transcripts()
		require.Len(t, calls, 2)
		lengths := []int{len(calls[0]), len(calls[1])}
		assert.ElementsMatch(t, []int{1, 3}, lengths)
	})

	t.Run("turns on different sessions do not block each other", func(t *testing.T) {
		history := memory.NewChatHistoryRepository()
		provider := &fakeProvider{reply: "ok", latency: 50 * time.Millisecond}
		svc := NewChatService(history, provider, nopLogger{})

		start := time.Now()
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{
					Message:     "hi",
					SessionName: fmt.Sprintf("session-%d", i),
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		// Four sessions at 50ms each would take 200ms serialized; parallel
		// execution should finish well under that.
		assert.Less(t, time.Since(start), 150*time.Millisecond)
	})
}

func TestChatServiceGetHistory(t *testing.T) {
	history := memory.NewChatHistoryRepository()
	provider := &fakeProvider{reply: "ok"}
	svc := NewChatService(history, provider, nopLogger{})

	_, err := svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "a", SessionName: "first"})
	require.NoError(t, err)
	_, err = svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "b", SessionName: "second"})
	require.NoError(t, err)
	_, err = svc.SendChat(context.Background(), "u1", &dto.SendChatRequest{Message: "c", SessionName: "first"})
	require.NoError(t, err)

	sessions, err := svc.GetHistory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "first", sessions[0].Name)
	assert.Equal(t, "second", sessions[1].Name)
	assert.Len(t, sessions[0].Messages, 4)
	assert.Len(t, sessions[1].Messages, 2)

	empty, err := svc.GetHistory(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
