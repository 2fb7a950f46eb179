package memory

import "time"

// Role of a message in a conversation log.
type Role string

const (
	RoleSystem      Role = "system"
	RoleUser        Role = "user"
	RoleAssistant   Role = "assistant"
	RoleObservation Role = "observation"
)

// Message is one entry of a conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Config configures a Store.
type Config struct {
	// MaxHistory caps the non-system messages kept per user.
	MaxHistory int
	// MaxUsers caps how many conversations are held at once.
	MaxUsers int
	// IdleTTL evicts conversations that saw no activity for this long.
	IdleTTL time.Duration
}

// Stats is a point-in-time view of a user's conversation.
type Stats struct {
	UserID    string `json:"user_id"`
	Messages  int    `json:"messages"`
	HasSystem bool   `json:"has_system"`
	// MaxHistory is the per-user cap.
	MaxHistory int `json:"max_history"`
	// Conversations counts the users currently held.
	Conversations int `json:"conversations"`
}
