package repository

import (
	"context"
	"fmt"
	"legal_aid_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const summaryCacheTTL = 5 * time.Minute

type FeedbackRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFeedbackRepository(db *gorm.DB, rdb *redis.Client) *FeedbackRepository {
	return &FeedbackRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *FeedbackRepository) Create(fb *model.Feedback) error {
	return r.DB.Create(fb).Error
}

func (r *FeedbackRepository) Save(fb *model.Feedback) error {
	return r.DB.Save(fb).Error
}

// FindByKey looks up the single entry for an (interaction, reviewer, junior,
// case) tuple.
func (r *FeedbackRepository) FindByKey(interactionID, reviewerID, juniorID, caseID uint) (*model.Feedback, error) {
	var fb model.Feedback
	err := r.DB.
		Where("interaction_id = ? AND reviewer_id = ? AND junior_id = ? AND case_id = ?",
			interactionID, reviewerID, juniorID, caseID).
		First(&fb).Error
	return &fb, err
}

func (r *FeedbackRepository) FindByJunior(juniorID uint) ([]model.Feedback, error) {
	var entries []model.Feedback
	err := r.DB.
		Preload("Reviewer").
		Preload("Case").
		Preload("Interaction").
		Where("junior_id = ?", juniorID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *FeedbackRepository) FindByInteraction(interactionID uint) ([]model.Feedback, error) {
	var entries []model.Feedback
	err := r.DB.
		Preload("Reviewer").
		Preload("Junior").
		Where("interaction_id = ?", interactionID).
		Find(&entries).Error
	return entries, err
}

func (r *FeedbackRepository) HasReaction(feedbackID uint, t model.ReactionType, accountID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.FeedbackReaction{}).
		Where("feedback_id = ? AND type = ? AND account_id = ?", feedbackID, t, accountID).
		Count(&count).Error
	return count > 0, err
}

func (r *FeedbackRepository) AddReaction(feedbackID uint, t model.ReactionType, accountID uint) error {
	return r.DB.Create(&model.FeedbackReaction{
		FeedbackID: feedbackID,
		Type:       t,
		AccountID:  accountID,
	}).Error
}

func (r *FeedbackRepository) RemoveReaction(feedbackID uint, t model.ReactionType, accountID uint) error {
	return r.DB.
		Where("feedback_id = ? AND type = ? AND account_id = ?", feedbackID, t, accountID).
		Delete(&model.FeedbackReaction{}).Error
}

func summaryCacheKey(juniorID uint) string {
	return fmt.Sprintf("feedback:summary:%d", juniorID)
}

// CachedSummary returns the cached summary JSON for a junior, "" on miss or
// when Redis is not configured.
func (r *FeedbackRepository) CachedSummary(juniorID uint) string {
	if r.Redis == nil {
		return ""
	}
	val, err := r.Redis.Get(r.ctx, summaryCacheKey(juniorID)).Result()
	if err != nil {
		return ""
	}
	return val
}

func (r *FeedbackRepository) CacheSummary(juniorID uint, payload string) {
	if r.Redis == nil {
		return
	}
	r.Redis.Set(r.ctx, summaryCacheKey(juniorID), payload, summaryCacheTTL)
}

func (r *FeedbackRepository) InvalidateSummary(juniorID uint) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(r.ctx, summaryCacheKey(juniorID))
}
