package service

import (
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/repository"
	"legal_aid_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ConversationService struct {
	ConvRepo *repository.ConversationRepository
	CaseRepo *repository.CaseRepository
}

func NewConversationService(convRepo *repository.ConversationRepository, caseRepo *repository.CaseRepository) *ConversationService {
	return &ConversationService{
		ConvRepo: convRepo,
		CaseRepo: caseRepo,
	}
}

// GetOrCreate returns the case's conversation, creating it on first access
// seeded with the case's current client, junior and advocate. Idempotent.
func (s *ConversationService) GetOrCreate(kase *model.Case) (*model.Conversation, error) {
	conv, err := s.ConvRepo.FindByCase(kase.ID)
	if err == nil {
		return conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conv = &model.Conversation{
		CaseID:          kase.ID,
		LastMessage:     "Case discussion started.",
		LastMessageTime: time.Now(),
	}
	if err := s.ConvRepo.Create(conv); err != nil {
		return nil, err
	}

	for _, id := range caseParticipantIDs(kase) {
		if err := s.ConvRepo.AddParticipant(conv.ID, id); err != nil {
			return nil, err
		}
	}

	return s.ConvRepo.FindByCase(kase.ID)
}

// StartAssignmentThread provisions the conversation for a case that got a
// junior at creation time: client and junior only, opened with a system line.
func (s *ConversationService) StartAssignmentThread(kase *model.Case, juniorID uint, line string) error {
	conv := &model.Conversation{
		CaseID:          kase.ID,
		LastMessage:     line,
		LastMessageTime: time.Now(),
	}
	if err := s.ConvRepo.Create(conv); err != nil {
		return err
	}

	for _, id := range []uint{kase.ClientID, juniorID} {
		if err := s.ConvRepo.AddParticipant(conv.ID, id); err != nil {
			return err
		}
	}

	return s.appendSystemLine(conv, line)
}

// SyncCaseParticipants brings the conversation in line with the case's
// current participant set, creating the thread if needed, and appends a
// system log line. Called after junior assignment, before the response goes
// out.
func (s *ConversationService) SyncCaseParticipants(kase *model.Case, line string) error {
	conv, err := s.ConvRepo.FindByCase(kase.ID)
	if err == gorm.ErrRecordNotFound {
		conv = &model.Conversation{
			CaseID:          kase.ID,
			LastMessageTime: time.Now(),
		}
		if err := s.ConvRepo.Create(conv); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, id := range caseParticipantIDs(kase) {
		if err := s.ConvRepo.AddParticipant(conv.ID, id); err != nil {
			return err
		}
	}

	return s.appendSystemLine(conv, line)
}

func (s *ConversationService) appendSystemLine(conv *model.Conversation, line string) error {
	now := time.Now()
	msg := &model.Message{
		ConversationID: conv.ID,
		SenderID:       nil,
		Content:        line,
		SentAt:         now,
	}
	if err := s.ConvRepo.CreateMessage(msg); err != nil {
		return err
	}

	conv.LastMessage = line
	conv.LastMessageTime = now
	return s.ConvRepo.Save(conv)
}

// GetForCase returns the full thread for callers allowed to read the case.
func (s *ConversationService) GetForCase(accountID uint, role model.AccountRole, caseID uint) (*model.Conversation, error) {
	kase, err := s.CaseRepo.FindByID(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCaseNotFound
		}
		return nil, err
	}

	if !CanAccessCase(role, accountID, kase) {
		return nil, util.ErrPermissionDenied
	}

	if _, err := s.GetOrCreate(kase); err != nil {
		return nil, err
	}

	return s.ConvRepo.FindByCaseWithMessages(caseID)
}

// SendMessage appends a message with a server timestamp and refreshes the
// denormalized preview fields.
func (s *ConversationService) SendMessage(accountID uint, role model.AccountRole, caseID uint, content string) (*model.Conversation, error) {
	kase, err := s.CaseRepo.FindByID(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCaseNotFound
		}
		return nil, err
	}

	if !CanAccessCase(role, accountID, kase) {
		return nil, util.ErrPermissionDenied
	}

	conv, err := s.GetOrCreate(kase)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	msg := &model.Message{
		ConversationID: conv.ID,
		SenderID:       &accountID,
		Content:        content,
		SentAt:         now,
	}
	if err := s.ConvRepo.CreateMessage(msg); err != nil {
		return nil, err
	}

	conv.LastMessage = content
	conv.LastMessageTime = now
	if err := s.ConvRepo.Save(conv); err != nil {
		return nil, err
	}

	return s.ConvRepo.FindByCaseWithMessages(caseID)
}

func (s *ConversationService) ListForAccount(accountID uint) ([]model.Conversation, error) {
	return s.ConvRepo.FindByParticipant(accountID)
}

// MarkRead adds a read receipt from the caller to every message that does not
// have one yet. Calling it again is a no-op.
func (s *ConversationService) MarkRead(accountID uint, caseID uint) error {
	conv, err := s.ConvRepo.FindByCase(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrConversationNotFound
		}
		return err
	}

	isMember, err := s.ConvRepo.IsParticipant(conv.ID, accountID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrConversationNotFound
	}

	msgs, err := s.ConvRepo.MessagesWithReceipts(conv.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, msg := range msgs {
		seen := false
		for _, r := range msg.Receipts {
			if r.AccountID == accountID {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		receipt := &model.MessageReceipt{
			MessageID: msg.ID,
			AccountID: accountID,
			ReadAt:    now,
		}
		if err := s.ConvRepo.CreateReceipt(receipt); err != nil {
			return err
		}
	}

	return nil
}

func caseParticipantIDs(kase *model.Case) []uint {
	ids := []uint{kase.ClientID}
	if kase.AssignedJuniorID != nil {
		ids = append(ids, *kase.AssignedJuniorID)
	}
	if kase.AssignedAdvocateID != nil {
		ids = append(ids, *kase.AssignedAdvocateID)
	}
	return ids
}
