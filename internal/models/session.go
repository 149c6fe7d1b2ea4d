package models

import (
	"time"

	"academy-assistant/internal/intake"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the chat transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the state of one live chat. It holds the current session only;
// finished conversations are not kept.
type Conversation struct {
	ID          string           `json:"id"`
	UserType    UserType         `json:"userType"`
	Member      *Member          `json:"member,omitempty"`
	History     []Message        `json:"history,omitempty"`
	Intake      *intake.Snapshot `json:"intake,omitempty"`
	LastVerdict *intake.Verdict  `json:"lastVerdict,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewConversation starts an empty conversation.
func NewConversation(id string) *Conversation {
	now := time.Now().UTC()
	return &Conversation{
		ID:        id,
		UserType:  UserTypeUnknown,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append records a message and bumps UpdatedAt.
func (c *Conversation) Append(role Role, content string) {
	c.History = append(c.History, Message{Role: role, Content: content})
	c.UpdatedAt = time.Now().UTC()
}

// Reset clears everything except the id and creation time.
func (c *Conversation) Reset() {
	c.UserType = UserTypeUnknown
	c.Member = nil
	c.History = nil
	c.Intake = nil
	c.LastVerdict = nil
	c.UpdatedAt = time.Now().UTC()
}

// IsExpired reports whether the conversation has been idle longer than ttl.
func (c *Conversation) IsExpired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(c.UpdatedAt) > ttl
}
