package service

import (
	"context"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatService routes chat messages between the session store and the
// completion provider.
type IChatService interface {
	SendChat(ctx context.Context, userID string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, userID string) ([]*dto.ChatSessionResponse, error)
}

type chatService struct {
	history     *memory.ChatHistoryRepository
	llmProvider llm.LLMProvider
	chatMapper  *mapper.ChatMapper
	logger      logger.ILogger
}

func NewChatService(history *memory.ChatHistoryRepository, llmProvider llm.LLMProvider, sysLogger logger.ILogger) IChatService {
	return &chatService{
		history:     history,
		llmProvider: llmProvider,
		chatMapper:  mapper.NewChatMapper(),
		logger:      sysLogger,
	}
}

// SendChat runs one chat turn: append the user message, send the full
// transcript to the provider, append the reply. The session's turn lock is
// held for the whole exchange, so concurrent requests on the same session
// serialize while other sessions keep going. When the provider call fails
// no assistant message is appended; the user message stays committed and
// the gateway error propagates to the caller.
func (s *chatService) SendChat(ctx context.Context, userID string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session := s.history.GetOrCreate(userID, request.SessionName)

	session.Lock()
	defer session.Unlock()

	sent := entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Content:   request.Message,
		CreatedAt: time.Now(),
	}
	session.Append(sent)

	transcript := session.Transcript()
	history := make([]llm.Message, len(transcript))
	for i, msg := range transcript {
		history[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}

	replyText, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		s.logger.Error("ChatService", "Completion call failed", map[string]interface{}{
			"user_id": userID,
			"session": session.Title(),
			"error":   err.Error(),
		})
		return nil, err
	}

	reply := entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleAssistant,
		Content:   replyText,
		CreatedAt: time.Now(),
	}
	session.Append(reply)

	s.logger.Info("ChatService", "Chat turn completed", map[string]interface{}{
		"user_id":         userID,
		"session":         session.Title(),
		"transcript_size": session.Len(),
	})

	return &dto.SendChatResponse{
		SessionName: session.Title(),
		Sent:        s.chatMapper.ChatMessageToDTO(&sent),
		Reply:       s.chatMapper.ChatMessageToDTO(&reply),
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, userID string) ([]*dto.ChatSessionResponse, error) {
	sessions := s.history.List(userID)
	return s.chatMapper.ChatSessionsToDTO(sessions), nil
}
