package model

import (
	"gorm.io/datatypes"
)

type ReactionType string

const (
	ReactionThumbsUp ReactionType = "thumbsUp"
	ReactionHeart    ReactionType = "heart"
	ReactionBook     ReactionType = "book"
)

func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionThumbsUp, ReactionHeart, ReactionBook:
		return true
	}
	return false
}

// Feedback is an advocate's structured review of a junior's handling of one
// case interaction (the case conversation). One entry per
// (interaction, reviewer, junior, case) tuple; re-submission mutates it.
// swagger:model Feedback
type Feedback struct {
	BaseModel
	InteractionID uint `gorm:"uniqueIndex:idx_feedback_key;not null" json:"interactionId"`
	ReviewerID    uint `gorm:"uniqueIndex:idx_feedback_key;not null" json:"reviewerId"`
	JuniorID      uint `gorm:"uniqueIndex:idx_feedback_key;index;not null" json:"juniorId"`
	CaseID        uint `gorm:"uniqueIndex:idx_feedback_key;not null" json:"caseId"`

	Interaction *Conversation `gorm:"foreignKey:InteractionID" json:"interaction,omitempty"`
	Reviewer    *Account      `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Junior      *Account      `gorm:"foreignKey:JuniorID" json:"junior,omitempty"`
	Case        *Case         `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	// Counters for the three named reactions; the de-duplicated reactor sets
	// live in feedback_reactions.
	ThumbsUpCount int `gorm:"default:0" json:"thumbsUpCount"`
	HeartCount    int `gorm:"default:0" json:"heartCount"`
	BookCount     int `gorm:"default:0" json:"bookCount"`

	Reactions []FeedbackReaction `gorm:"foreignKey:FeedbackID" json:"reactions,omitempty"`

	Comment            string                      `gorm:"type:text" json:"comment"`
	ImprovementAreas   datatypes.JSONSlice[string] `json:"improvementAreas"`
	RecommendedReading datatypes.JSONSlice[string] `json:"recommendedReading"`
}

func (Feedback) TableName() string {
	return "feedback_entries"
}

// FeedbackReaction is one reactor's vote of one type on one feedback entry.
// Toggling removes the row again.
type FeedbackReaction struct {
	FeedbackID uint         `gorm:"primaryKey" json:"feedbackId"`
	Type       ReactionType `gorm:"primaryKey;type:varchar(20)" json:"type"`
	AccountID  uint         `gorm:"primaryKey" json:"accountId"`
}

func (FeedbackReaction) TableName() string {
	return "feedback_reactions"
}

// CounterFor returns a pointer to the counter column backing the given
// reaction type, nil for unknown types.
func (f *Feedback) CounterFor(t ReactionType) *int {
	switch t {
	case ReactionThumbsUp:
		return &f.ThumbsUpCount
	case ReactionHeart:
		return &f.HeartCount
	case ReactionBook:
		return &f.BookCount
	}
	return nil
}
