package controller

import (
	"errors"
	"legal_aid_backend/internal/service"
	"legal_aid_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConversationController struct {
	ConvService *service.ConversationService
}

func NewConversationController(convService *service.ConversationService) *ConversationController {
	return &ConversationController{ConvService: convService}
}

// GetForCase godoc
// @Summary Get the conversation for a case
// @Description Creates the thread on first access, seeded with the case's participants
// @Tags conversations
// @Produce  json
// @Security ApiKeyAuth
// @Param   caseId path int true "case id"
// @Success 200 {object} util.Response{data=model.Conversation} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /conversations/case/{caseId} [get]
func (c *ConversationController) GetForCase(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	caseID, err := strconv.ParseUint(ctx.Param("caseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid case id")
		return
	}

	conv, err := c.ConvService.GetForCase(claims.AccountID, claims.Role, uint(caseID))
	if err != nil {
		conversationError(ctx, err)
		return
	}

	util.Success(ctx, conv)
}

// swagger:model SendMessageRequest
type SendMessageRequest struct {
	CaseID  uint   `json:"caseId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary Send a message in a case conversation
// @Tags conversations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SendMessageRequest true "case id and content"
// @Success 201 {object} util.Response{data=model.Conversation} "created"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /conversations/message [post]
func (c *ConversationController) SendMessage(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.ConvService.SendMessage(claims.AccountID, claims.Role, req.CaseID, req.Content)
	if err != nil {
		conversationError(ctx, err)
		return
	}

	util.Created(ctx, conv)
}

// ListMine godoc
// @Summary List the caller's conversations
// @Tags conversations
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Conversation} "success"
// @Router /conversations [get]
func (c *ConversationController) ListMine(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	convs, err := c.ConvService.ListForAccount(claims.AccountID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, convs)
}

// swagger:model MarkReadRequest
type MarkReadRequest struct {
	CaseID uint `json:"caseId" binding:"required"`
}

// MarkRead godoc
// @Summary Mark every message in a case conversation as read
// @Description Idempotent; only missing receipts are added
// @Tags conversations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body MarkReadRequest true "case id"
// @Success 200 {object} util.Response{data=object} "success"
// @Failure 404 {object} util.Response "conversation not found"
// @Router /conversations/read [put]
func (c *ConversationController) MarkRead(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MarkReadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ConvService.MarkRead(claims.AccountID, req.CaseID); err != nil {
		conversationError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Messages marked as read"})
}

func conversationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCaseNotFound), errors.Is(err, util.ErrConversationNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
