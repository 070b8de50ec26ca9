package controller

import (
	"errors"
	"legal_aid_backend/internal/service"
	"legal_aid_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AccountController struct {
	AccountService *service.AccountService
}

func NewAccountController(accountService *service.AccountService) *AccountController {
	return &AccountController{AccountService: accountService}
}

// GetByID godoc
// @Summary Get an account by id
// @Tags accounts
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "account id"
// @Success 200 {object} util.Response{data=model.Account} "success"
// @Failure 404 {object} util.Response "not found"
// @Router /accounts/{id} [get]
func (c *AccountController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid account id")
		return
	}

	account, err := c.AccountService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrAccountNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, account)
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	Bio            *string  `json:"bio"`
	Location       *string  `json:"location"`
	Specialization []string `json:"specialization"`
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description Merges the provided fields; specialization applies to advocates only
// @Tags accounts
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.Account} "success"
// @Failure 401 {object} util.Response "unauthorized"
// @Router /accounts/profile [put]
func (c *AccountController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	account, err := c.AccountService.UpdateProfile(claims.AccountID, service.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		Location:       req.Location,
		Specialization: req.Specialization,
	})
	if err != nil {
		if errors.Is(err, util.ErrAccountNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, account)
}

// UnsupervisedJuniors godoc
// @Summary List juniors without a supervisor
// @Tags accounts
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Account} "success"
// @Router /accounts/juniors/unsupervised [get]
func (c *AccountController) UnsupervisedJuniors(ctx *gin.Context) {
	juniors, err := c.AccountService.UnsupervisedJuniors()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, juniors)
}

// swagger:model ManageJuniorRequest
type ManageJuniorRequest struct {
	JuniorID uint   `json:"juniorId" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// ManageJunior godoc
// @Summary Accept or reject a junior into the caller's community
// @Description accept links the supervision and clears the junior's grace period; reject leaves the junior unsupervised
// @Tags accounts
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ManageJuniorRequest true "junior id and action"
// @Success 200 {object} util.Response{data=object} "success"
// @Failure 400 {object} util.Response "invalid action or account types"
// @Failure 404 {object} util.Response "account not found"
// @Router /accounts/juniors/manage [post]
func (c *AccountController) ManageJunior(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ManageJuniorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	junior, err := c.AccountService.ManageJunior(claims.AccountID, req.JuniorID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAccountNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidAccountTypes), errors.Is(err, util.ErrInvalidAction):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if req.Action == "reject" {
		util.Success(ctx, gin.H{"message": "Junior request rejected"})
		return
	}

	util.Success(ctx, gin.H{
		"message": "Junior accepted successfully",
		"junior":  junior,
	})
}

// SupervisedJuniors godoc
// @Summary List the caller's supervisees
// @Tags accounts
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Account} "success"
// @Router /accounts/juniors/supervised [get]
func (c *AccountController) SupervisedJuniors(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	juniors, err := c.AccountService.SupervisedJuniors(claims.AccountID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, juniors)
}

// AdvocateProfile godoc
// @Summary Get an advocate's public profile with supervisees
// @Tags accounts
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "advocate id"
// @Success 200 {object} util.Response{data=model.Account} "success"
// @Failure 404 {object} util.Response "advocate not found"
// @Router /accounts/advocates/{id} [get]
func (c *AccountController) AdvocateProfile(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid advocate id")
		return
	}

	advocate, err := c.AccountService.AdvocateProfile(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrAdvocateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, advocate)
}
