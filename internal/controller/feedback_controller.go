package controller

import (
	"errors"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/service"
	"legal_aid_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackService *service.FeedbackService
	AuthService     *service.AuthService
}

func NewFeedbackController(feedbackService *service.FeedbackService, authService *service.AuthService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService, AuthService: authService}
}

// swagger:model UpsertFeedbackRequest
type UpsertFeedbackRequest struct {
	InteractionID      uint     `json:"interactionId" binding:"required"`
	JuniorID           uint     `json:"juniorId" binding:"required"`
	CaseID             uint     `json:"caseId" binding:"required"`
	ReactionType       *string  `json:"reactionType"`
	Comment            *string  `json:"comment"`
	ImprovementAreas   []string `json:"improvementAreas"`
	RecommendedReading []string `json:"recommendedReading"`
}

// Upsert godoc
// @Summary Record feedback on a supervised junior's interaction
// @Description One entry per (interaction, reviewer, junior, case); reactions toggle on repeat
// @Tags feedback
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpsertFeedbackRequest true "feedback payload"
// @Success 200 {object} util.Response{data=model.Feedback} "success"
// @Failure 403 {object} util.Response "not the junior's supervisor"
// @Failure 404 {object} util.Response "interaction not found"
// @Router /feedback [post]
func (c *FeedbackController) Upsert(ctx *gin.Context) {
	reviewer := c.AuthService.GetCurrentAccount(ctx)
	if reviewer == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpsertFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	upd := service.FeedbackUpsert{
		InteractionID:      req.InteractionID,
		JuniorID:           req.JuniorID,
		CaseID:             req.CaseID,
		Comment:            req.Comment,
		ImprovementAreas:   req.ImprovementAreas,
		RecommendedReading: req.RecommendedReading,
	}
	if req.ReactionType != nil {
		t := model.ReactionType(*req.ReactionType)
		if !model.ValidReactionType(t) {
			util.BadRequest(ctx, "invalid reaction type")
			return
		}
		upd.ReactionType = &t
	}

	fb, err := c.FeedbackService.Upsert(reviewer, upd)
	if err != nil {
		feedbackError(ctx, err)
		return
	}

	util.Success(ctx, fb)
}

// ListForJunior godoc
// @Summary List all feedback recorded for a supervised junior
// @Tags feedback
// @Produce  json
// @Security ApiKeyAuth
// @Param   juniorId path int true "junior account id"
// @Success 200 {object} util.Response{data=[]model.Feedback} "success"
// @Failure 403 {object} util.Response "not the junior's supervisor"
// @Router /feedback/junior/{juniorId} [get]
func (c *FeedbackController) ListForJunior(ctx *gin.Context) {
	reviewer := c.AuthService.GetCurrentAccount(ctx)
	if reviewer == nil {
		util.Unauthorized(ctx)
		return
	}

	juniorID, err := strconv.ParseUint(ctx.Param("juniorId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid junior id")
		return
	}

	entries, err := c.FeedbackService.ListForJunior(reviewer, uint(juniorID))
	if err != nil {
		feedbackError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// Summary godoc
// @Summary Aggregate feedback statistics for a supervised junior
// @Tags feedback
// @Produce  json
// @Security ApiKeyAuth
// @Param   juniorId path int true "junior account id"
// @Success 200 {object} util.Response{data=service.FeedbackSummary} "success"
// @Failure 403 {object} util.Response "not the junior's supervisor"
// @Router /feedback/junior/{juniorId}/summary [get]
func (c *FeedbackController) Summary(ctx *gin.Context) {
	reviewer := c.AuthService.GetCurrentAccount(ctx)
	if reviewer == nil {
		util.Unauthorized(ctx)
		return
	}

	juniorID, err := strconv.ParseUint(ctx.Param("juniorId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid junior id")
		return
	}

	summary, err := c.FeedbackService.Summary(reviewer, uint(juniorID))
	if err != nil {
		feedbackError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// ListForInteraction godoc
// @Summary List feedback attached to a conversation
// @Tags feedback
// @Produce  json
// @Security ApiKeyAuth
// @Param   interactionId path int true "conversation id"
// @Success 200 {object} util.Response{data=[]model.Feedback} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "interaction not found"
// @Router /feedback/interaction/{interactionId} [get]
func (c *FeedbackController) ListForInteraction(ctx *gin.Context) {
	caller := c.AuthService.GetCurrentAccount(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	interactionID, err := strconv.ParseUint(ctx.Param("interactionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid interaction id")
		return
	}

	entries, err := c.FeedbackService.ListForInteraction(caller, uint(interactionID))
	if err != nil {
		feedbackError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

func feedbackError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInteractionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
