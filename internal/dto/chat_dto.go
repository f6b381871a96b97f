package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message     string `json:"message" validate:"required"`
	SessionName string `json:"session_name,omitempty"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	SessionName string          `json:"session_name"`
	Sent        *ChatMessageDTO `json:"sent"`
	Reply       *ChatMessageDTO `json:"reply"`
}

type ChatSessionResponse struct {
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	Messages  []ChatMessageDTO `json:"messages"`
}
