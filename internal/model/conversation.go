package model

import (
	"time"
)

// Conversation is the message thread bound to exactly one case. It is
// provisioned lazily on first access or first message.
type Conversation struct {
	BaseModel
	CaseID uint  `gorm:"uniqueIndex;not null" json:"caseId"`
	Case   *Case `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`

	// Denormalized preview for conversation lists.
	LastMessage     string    `gorm:"size:500" json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationParticipant links an account into a case thread. The composite
// key keeps membership idempotent.
type ConversationParticipant struct {
	ConversationID uint      `gorm:"primaryKey" json:"conversationId"`
	AccountID      uint      `gorm:"primaryKey;index" json:"accountId"`
	Account        *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

// Message is one entry in a case thread. SenderID is nil for system lines
// (case created, junior assigned).
type Message struct {
	BaseModel
	ConversationID uint      `gorm:"index;index:idx_conv_sent;not null" json:"conversationId"`
	SenderID       *uint     `gorm:"index" json:"senderId"`
	Sender         *Account  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	SentAt         time.Time `gorm:"index:idx_conv_sent" json:"sentAt"`

	Receipts []MessageReceipt `gorm:"foreignKey:MessageID" json:"readBy"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageReceipt marks a message read by an account. One row per reader per
// message, enforced by the composite key.
type MessageReceipt struct {
	MessageID uint      `gorm:"primaryKey" json:"messageId"`
	AccountID uint      `gorm:"primaryKey;index" json:"accountId"`
	ReadAt    time.Time `json:"readAt"`
}

func (MessageReceipt) TableName() string {
	return "message_receipts"
}
