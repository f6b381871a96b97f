package entity

import (
	"sync"
	"time"
)

// ChatSession is a named, append-only transcript owned by a single user.
// The transcript is only reachable through Append and Transcript, so callers
// can never reorder or drop messages behind the session's back.
type ChatSession struct {
	// turn serializes whole chat turns (append user message, call the LLM,
	// append the reply). Held via Lock/Unlock by the chat service so two
	// concurrent requests on the same session never see the same transcript
	// snapshot. turn is separate from mu so /history reads stay possible
	// while a turn is waiting on the provider.
	turn sync.Mutex

	mu        sync.RWMutex
	title     string
	createdAt time.Time
	messages  []ChatMessage
}

func NewChatSession(title string) *ChatSession {
	return &ChatSession{
		title:     title,
		createdAt: time.Now(),
	}
}

func (s *ChatSession) Title() string {
	return s.title
}

func (s *ChatSession) CreatedAt() time.Time {
	return s.createdAt
}

// Lock acquires the turn lock. It does not guard the message slice; Append
// and Transcript remain individually safe without it.
func (s *ChatSession) Lock() {
	s.turn.Lock()
}

func (s *ChatSession) Unlock() {
	s.turn.Unlock()
}

func (s *ChatSession) Append(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Transcript returns a copy of the full message history, oldest first.
func (s *ChatSession) Transcript() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
