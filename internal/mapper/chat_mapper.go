package mapper

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToDTO(msg *entity.ChatMessage) *dto.ChatMessageDTO {
	if msg == nil {
		return nil
	}

	return &dto.ChatMessageDTO{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// ChatSessionToDTO snapshots a session. The DTO holds copies only, so the
// response can be serialized while turns keep running on the session.
func (m *ChatMapper) ChatSessionToDTO(s *entity.ChatSession) *dto.ChatSessionResponse {
	if s == nil {
		return nil
	}

	transcript := s.Transcript()
	messages := make([]dto.ChatMessageDTO, len(transcript))
	for i := range transcript {
		messages[i] = *m.ChatMessageToDTO(&transcript[i])
	}

	return &dto.ChatSessionResponse{
		Name:      s.Title(),
		CreatedAt: s.CreatedAt(),
		Messages:  messages,
	}
}

func (m *ChatMapper) ChatSessionsToDTO(sessions []*entity.ChatSession) []*dto.ChatSessionResponse {
	out := make([]*dto.ChatSessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = m.ChatSessionToDTO(s)
	}
	return out
}
