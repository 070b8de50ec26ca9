package service

import (
	"encoding/json"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/repository"
	"legal_aid_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedbackUpsert carries one feedback submission. Omitted fields keep their
// prior value on an existing entry.
type FeedbackUpsert struct {
	InteractionID      uint
	JuniorID           uint
	CaseID             uint
	ReactionType       *model.ReactionType
	Comment            *string
	ImprovementAreas   []string
	RecommendedReading []string
}

// FeedbackSummary aggregates all feedback an advocate's junior has received.
type FeedbackSummary struct {
	TotalFeedback            int            `json:"totalFeedback"`
	ThumbsUpCount            int            `json:"thumbsUpCount"`
	HeartCount               int            `json:"heartCount"`
	BookCount                int            `json:"bookCount"`
	AverageReactions         float64        `json:"averageReactions"`
	CommonImprovementAreas   map[string]int `json:"commonImprovementAreas"`
	CommonRecommendedReading map[string]int `json:"commonRecommendedReading"`
}

type FeedbackService struct {
	FeedbackRepo *repository.FeedbackRepository
	AccountRepo  *repository.AccountRepository
	ConvRepo     *repository.ConversationRepository
}

func NewFeedbackService(feedbackRepo *repository.FeedbackRepository, accountRepo *repository.AccountRepository, convRepo *repository.ConversationRepository) *FeedbackService {
	return &FeedbackService{
		FeedbackRepo: feedbackRepo,
		AccountRepo:  accountRepo,
		ConvRepo:     convRepo,
	}
}

// supervises checks the reviewer is an advocate and the direct supervisor of
// the junior.
func (s *FeedbackService) supervises(reviewer *model.Account, juniorID uint) (*model.Account, error) {
	if reviewer.Role != model.Advocate {
		return nil, util.ErrPermissionDenied
	}
	junior, err := s.AccountRepo.FindByID(juniorID)
	if err != nil || junior.Role != model.Junior {
		return nil, util.ErrPermissionDenied
	}
	if junior.SupervisorID == nil || *junior.SupervisorID != reviewer.ID {
		return nil, util.ErrPermissionDenied
	}
	return junior, nil
}

// Upsert creates or mutates the entry keyed by (interaction, reviewer,
// junior, case). A named reaction toggles: reacting again with the same type
// removes it. Comment and the two lists overwrite only when provided.
func (s *FeedbackService) Upsert(reviewer *model.Account, upd FeedbackUpsert) (*model.Feedback, error) {
	if _, err := s.supervises(reviewer, upd.JuniorID); err != nil {
		return nil, err
	}

	if _, err := s.ConvRepo.FindByID(upd.InteractionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInteractionNotFound
		}
		return nil, err
	}

	fb, err := s.FeedbackRepo.FindByKey(upd.InteractionID, reviewer.ID, upd.JuniorID, upd.CaseID)
	if err == gorm.ErrRecordNotFound {
		fb = &model.Feedback{
			InteractionID: upd.InteractionID,
			ReviewerID:    reviewer.ID,
			JuniorID:      upd.JuniorID,
			CaseID:        upd.CaseID,
		}
		if err := s.FeedbackRepo.Create(fb); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if upd.ReactionType != nil && model.ValidReactionType(*upd.ReactionType) {
		if err := s.toggleReaction(fb, *upd.ReactionType, reviewer.ID); err != nil {
			return nil, err
		}
	}

	if upd.Comment != nil && *upd.Comment != "" {
		fb.Comment = *upd.Comment
	}
	if upd.ImprovementAreas != nil {
		fb.ImprovementAreas = datatypes.NewJSONSlice(upd.ImprovementAreas)
	}
	if upd.RecommendedReading != nil {
		fb.RecommendedReading = datatypes.NewJSONSlice(upd.RecommendedReading)
	}

	if err := s.FeedbackRepo.Save(fb); err != nil {
		return nil, err
	}

	s.FeedbackRepo.InvalidateSummary(upd.JuniorID)

	return fb, nil
}

func (s *FeedbackService) toggleReaction(fb *model.Feedback, t model.ReactionType, accountID uint) error {
	counter := fb.CounterFor(t)
	if counter == nil {
		return nil
	}

	has, err := s.FeedbackRepo.HasReaction(fb.ID, t, accountID)
	if err != nil {
		return err
	}

	if has {
		if err := s.FeedbackRepo.RemoveReaction(fb.ID, t, accountID); err != nil {
			return err
		}
		*counter--
		return nil
	}

	if err := s.FeedbackRepo.AddReaction(fb.ID, t, accountID); err != nil {
		return err
	}
	*counter++
	return nil
}

func (s *FeedbackService) ListForJunior(reviewer *model.Account, juniorID uint) ([]model.Feedback, error) {
	if _, err := s.supervises(reviewer, juniorID); err != nil {
		return nil, err
	}
	return s.FeedbackRepo.FindByJunior(juniorID)
}

// Summary aggregates every entry for the junior. The mean divides by
// max(total, 1) so an empty ledger reads as zero, not NaN. Served from the
// Redis cache when one is configured.
func (s *FeedbackService) Summary(reviewer *model.Account, juniorID uint) (*FeedbackSummary, error) {
	if _, err := s.supervises(reviewer, juniorID); err != nil {
		return nil, err
	}

	if cached := s.FeedbackRepo.CachedSummary(juniorID); cached != "" {
		var summary FeedbackSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	entries, err := s.FeedbackRepo.FindByJunior(juniorID)
	if err != nil {
		return nil, err
	}

	summary := &FeedbackSummary{
		TotalFeedback:            len(entries),
		CommonImprovementAreas:   map[string]int{},
		CommonRecommendedReading: map[string]int{},
	}

	for _, fb := range entries {
		summary.ThumbsUpCount += fb.ThumbsUpCount
		summary.HeartCount += fb.HeartCount
		summary.BookCount += fb.BookCount

		for _, area := range fb.ImprovementAreas {
			summary.CommonImprovementAreas[area]++
		}
		for _, reading := range fb.RecommendedReading {
			summary.CommonRecommendedReading[reading]++
		}
	}

	denom := summary.TotalFeedback
	if denom == 0 {
		denom = 1
	}
	summary.AverageReactions = float64(summary.ThumbsUpCount+summary.HeartCount+summary.BookCount) / float64(denom)

	if payload, err := json.Marshal(summary); err == nil {
		s.FeedbackRepo.CacheSummary(juniorID, string(payload))
	}

	return summary, nil
}

// ListForInteraction is visible to the conversation's participants and to any
// advocate supervising one of them.
func (s *FeedbackService) ListForInteraction(caller *model.Account, interactionID uint) ([]model.Feedback, error) {
	conv, err := s.ConvRepo.FindByID(interactionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInteractionNotFound
		}
		return nil, err
	}

	hasAccess := false
	for _, p := range conv.Participants {
		if p.AccountID == caller.ID {
			hasAccess = true
			break
		}
	}
	if !hasAccess && caller.Role == model.Advocate {
		for _, p := range conv.Participants {
			if p.Account != nil && p.Account.SupervisorID != nil && *p.Account.SupervisorID == caller.ID {
				hasAccess = true
				break
			}
		}
	}

	if !hasAccess {
		return nil, util.ErrPermissionDenied
	}

	return s.FeedbackRepo.FindByInteraction(interactionID)
}
