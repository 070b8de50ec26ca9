package controller

import (
	"errors"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/service"
	"legal_aid_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	FirstName      string   `json:"firstName" binding:"required"`
	LastName       string   `json:"lastName" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=6"`
	Role           string   `json:"role" binding:"required,oneof=client junior advocate"`
	Specialization []string `json:"specialization"`
	BarNumber      string   `json:"barNumber"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a client, junior or advocate account and returns a JWT
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "registration details"
// @Success 201 {object} util.Response{data=object} "created"
// @Failure 400 {object} util.Response "validation error"
// @Failure 409 {object} util.Response "email already registered"
// @Failure 500 {object} util.Response "internal error"
// @Router /accounts/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	account := &model.Account{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           model.AccountRole(req.Role),
		Specialization: datatypes.NewJSONSlice(req.Specialization),
		BarNumber:      req.BarNumber,
	}

	if err := c.AuthService.Register(account); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	token, err := c.AuthService.IssueToken(account)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"token":   token,
		"account": account,
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "login credentials"
// @Success 200 {object} util.Response{data=object} "success"
// @Failure 400 {object} util.Response "validation error"
// @Failure 401 {object} util.Response "invalid credentials"
// @Router /accounts/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, account, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token":   token,
		"account": account,
	})
}

// GetMe godoc
// @Summary Current account profile
// @Tags accounts
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Account} "success"
// @Failure 401 {object} util.Response "unauthorized"
// @Router /accounts/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	account := c.AuthService.GetCurrentAccount(ctx)
	if account == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, account)
}
