package repository

import (
	"legal_aid_backend/internal/model"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) Create(conv *model.Conversation) error {
	return r.DB.Create(conv).Error
}

func (r *ConversationRepository) Save(conv *model.Conversation) error {
	return r.DB.Save(conv).Error
}

func (r *ConversationRepository) FindByID(id uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.Preload("Participants.Account").First(&conv, id).Error
	return &conv, err
}

func (r *ConversationRepository) FindByCase(caseID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.
		Preload("Participants.Account").
		Where("case_id = ?", caseID).
		First(&conv).Error
	return &conv, err
}

// FindByCaseWithMessages loads the full thread, senders and receipts included.
func (r *ConversationRepository) FindByCaseWithMessages(caseID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.
		Preload("Participants.Account").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.sent_at ASC")
		}).
		Preload("Messages.Sender").
		Preload("Messages.Receipts").
		Where("case_id = ?", caseID).
		First(&conv).Error
	return &conv, err
}

func (r *ConversationRepository) FindByParticipant(accountID uint) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.DB.
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.account_id = ?", accountID).
		Preload("Participants.Account").
		Preload("Case").
		Order("conversations.last_message_time DESC").
		Find(&convs).Error
	return convs, err
}

func (r *ConversationRepository) IsParticipant(convID, accountID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ConversationParticipant{}).
		Where("conversation_id = ? AND account_id = ?", convID, accountID).
		Count(&count).Error
	return count > 0, err
}

// AddParticipant inserts the membership row if it is not there yet.
func (r *ConversationRepository) AddParticipant(convID, accountID uint) error {
	var count int64
	if err := r.DB.Model(&model.ConversationParticipant{}).
		Where("conversation_id = ? AND account_id = ?", convID, accountID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.DB.Create(&model.ConversationParticipant{
		ConversationID: convID,
		AccountID:      accountID,
	}).Error
}

func (r *ConversationRepository) CreateMessage(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

// MessagesWithReceipts returns the thread's messages with read receipts
// preloaded, oldest first.
func (r *ConversationRepository) MessagesWithReceipts(convID uint) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.
		Preload("Receipts").
		Where("conversation_id = ?", convID).
		Order("sent_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *ConversationRepository) CreateReceipt(receipt *model.MessageReceipt) error {
	return r.DB.Create(receipt).Error
}
