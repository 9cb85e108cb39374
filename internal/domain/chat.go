package domain

import "time"

// ChatRole distinguishes the two sides of a chatbot exchange.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one appended row of a chatbot session log. Rows are never
// mutated or deleted.
type ChatMessage struct {
	ID         string
	SessionID  string
	Role       ChatRole
	Text       string
	ContextTag *string
	Timestamp  time.Time
}
