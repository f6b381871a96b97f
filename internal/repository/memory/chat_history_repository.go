package memory

import (
	"sync"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
)

// userHistory keeps one user's sessions in creation order plus a name index
// for lookup. Session titles are unique per user; first match wins.
type userHistory struct {
	order   []*entity.ChatSession
	byTitle map[string]*entity.ChatSession
}

// ChatHistoryRepository is the process-wide chat state. It lives for the
// lifetime of the process and is deliberately not backed by durable storage.
type ChatHistoryRepository struct {
	mu    sync.RWMutex
	users map[string]*userHistory
}

func NewChatHistoryRepository() *ChatHistoryRepository {
	return &ChatHistoryRepository{
		users: make(map[string]*userHistory),
	}
}

// GetOrCreate returns the user's session with the given title, creating it
// (and the user's collection, on their first chat) when absent. An empty
// title resolves to the default title. Two calls with the same arguments
// return the same session.
func (r *ChatHistoryRepository) GetOrCreate(userID, title string) *entity.ChatSession {
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	uh, ok := r.users[userID]
	if !ok {
		uh = &userHistory{byTitle: make(map[string]*entity.ChatSession)}
		r.users[userID] = uh
	}

	if session, ok := uh.byTitle[title]; ok {
		return session
	}

	session := entity.NewChatSession(title)
	uh.order = append(uh.order, session)
	uh.byTitle[title] = session
	return session
}

// List returns the user's sessions in creation order. The slice is a copy;
// mutating it does not affect the store.
func (r *ChatHistoryRepository) List(userID string) []*entity.ChatSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uh, ok := r.users[userID]
	if !ok {
		return nil
	}

	out := make([]*entity.ChatSession, len(uh.order))
	copy(out, uh.order)
	return out
}
