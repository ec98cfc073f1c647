package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a proposal's assistant conversation. Messages
// are session-scoped working notes, not part of the proposal document.
type Message struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ProposalID snowflake.ID `gorm:"not null;index" json:"proposal_id"`
	Role       string       `gorm:"type:text;not null" json:"role"`
	Content    string       `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (Message) TableName() string { return "chat_messages" }

// Responder is the assistant port: one request, one eventual response. A
// real backend can replace the canned implementation without touching the
// proposal store or pricing.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Service logs user messages and produces assistant replies.
type Service interface {
	Send(ctx context.Context, proposalID, content string) (Message, error)
	History(ctx context.Context, proposalID string) ([]Message, error)
}

var (
	ErrInvalidProposal = errors.New("invalid_proposal_id")
	ErrEmptyMessage    = errors.New("empty_message")
)
