package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MatchPending  = "pending"
	MatchAccepted = "accepted"
	MatchRejected = "rejected"
)

// Match stores the pair in canonical order: UserA < UserB lexicographically.
// The unique pair index is what makes concurrent opposite-order swipes safe.
type Match struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primary_key"`
	UserA       string    `json:"user_a" gorm:"type:varchar(36);not null;index:idx_match_pair,unique"`
	UserB       string    `json:"user_b" gorm:"type:varchar(36);not null;index:idx_match_pair,unique"`
	Status      string    `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	InitiatedBy string    `json:"initiated_by" gorm:"type:varchar(36);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Conversation is keyed by the same canonical pair as Match; provisioning is
// get-or-create so a retried swipe never produces a second channel.
type Conversation struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primary_key"`
	UserA     string    `json:"user_a" gorm:"type:varchar(36);not null;index:idx_conv_pair,unique"`
	UserB     string    `json:"user_b" gorm:"type:varchar(36);not null;index:idx_conv_pair,unique"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID             string         `json:"id" gorm:"type:varchar(36);primary_key"`
	ConversationID string         `json:"conversation_id" gorm:"type:varchar(36);not null;index"`
	SenderID       string         `json:"sender_id" gorm:"type:varchar(36);not null"`
	Body           string         `json:"body" gorm:"type:text;not null"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// CanonicalPair orders two user IDs so (a,b) and (b,a) address the same row.
func CanonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

func (Match) TableName() string {
	return "matches"
}

func (Conversation) TableName() string {
	return "conversations"
}

func (Message) TableName() string {
	return "messages"
}
