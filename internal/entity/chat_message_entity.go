package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry of a session transcript. Immutable once appended.
type ChatMessage struct {
	Id        uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}
