package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// DefaultSessionTitle is used when a chat request carries no session name.
	DefaultSessionTitle = "New Chat"
)
