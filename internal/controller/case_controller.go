package controller

import (
	"errors"
	"fmt"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/service"
	"legal_aid_backend/internal/util"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaseController struct {
	CaseService    *service.CaseService
	AuthService    *service.AuthService
	StorageService *service.StorageService
}

func NewCaseController(caseService *service.CaseService, authService *service.AuthService, storageService *service.StorageService) *CaseController {
	return &CaseController{
		CaseService:    caseService,
		AuthService:    authService,
		StorageService: storageService,
	}
}

// swagger:model CreateCaseRequest
type CreateCaseRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Category       string `json:"category" binding:"required"`
	Priority       string `json:"priority"`
	AssignedJunior *uint  `json:"assignedJunior"`
}

// Create godoc
// @Summary Create a case
// @Description Clients only. Optionally assigns one of the marketplace's juniors at creation.
// @Tags cases
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateCaseRequest true "case details"
// @Success 201 {object} util.Response{data=model.Case} "created"
// @Failure 400 {object} util.Response "validation error"
// @Failure 403 {object} util.Response "not a client"
// @Router /cases [post]
func (c *CaseController) Create(ctx *gin.Context) {
	caller := c.AuthService.GetCurrentAccount(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !model.ValidCaseCategory(req.Category) {
		util.BadRequest(ctx, "unknown case category")
		return
	}

	priority := model.PriorityMedium
	if req.Priority != "" {
		priority = model.CasePriority(req.Priority)
		if !model.ValidCasePriority(priority) {
			util.BadRequest(ctx, "unknown case priority")
			return
		}
	}

	kase := &model.Case{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
	}

	created, err := c.CaseService.Create(caller, kase, req.AssignedJunior)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, created)
}

// List godoc
// @Summary List the caller's cases
// @Description Clients see their own cases, juniors their assignments, advocates their supervised cases
// @Tags cases
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Case} "success"
// @Router /cases [get]
func (c *CaseController) List(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	cases, err := c.CaseService.ListForCaller(claims.AccountID, claims.Role)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, cases)
}

// Get godoc
// @Summary Get one case
// @Tags cases
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "case id"
// @Success 200 {object} util.Response{data=model.Case} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /cases/{id} [get]
func (c *CaseController) Get(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid case id")
		return
	}

	kase, err := c.CaseService.Get(claims.AccountID, claims.Role, uint(id))
	if err != nil {
		caseError(ctx, err)
		return
	}

	util.Success(ctx, kase)
}

// swagger:model UpdateCaseRequest
type UpdateCaseRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	Resolution     *string    `json:"resolution"`
	Deadline       *time.Time `json:"deadline"`
	AssignedJunior *uint      `json:"assignedJunior"`
}

// Update godoc
// @Summary Update a case
// @Description Owner client or assigned advocate. Fields outside the caller's role policy are ignored.
// @Tags cases
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "case id"
// @Param   body body UpdateCaseRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Case} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /cases/{id} [put]
func (c *CaseController) Update(ctx *gin.Context) {
	caller := c.AuthService.GetCurrentAccount(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid case id")
		return
	}

	var req UpdateCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	kase, err := c.CaseService.Update(caller, uint(id), service.CaseUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Status:         req.Status,
		Priority:       req.Priority,
		Resolution:     req.Resolution,
		Deadline:       req.Deadline,
		AssignedJunior: req.AssignedJunior,
	})
	if err != nil {
		caseError(ctx, err)
		return
	}

	util.Success(ctx, kase)
}

// swagger:model AssignJuniorRequest
type AssignJuniorRequest struct {
	CaseID   uint `json:"caseId" binding:"required"`
	JuniorID uint `json:"juniorId" binding:"required"`
}

// AssignJunior godoc
// @Summary Assign a supervised junior to a case
// @Description Advocates only; the junior must be under the caller's supervision
// @Tags cases
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AssignJuniorRequest true "case and junior"
// @Success 200 {object} util.Response{data=model.Case} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case or junior not found"
// @Router /cases/assign-junior [post]
func (c *CaseController) AssignJunior(ctx *gin.Context) {
	caller := c.AuthService.GetCurrentAccount(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AssignJuniorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	kase, err := c.CaseService.AssignJunior(caller, req.CaseID, req.JuniorID)
	if err != nil {
		caseError(ctx, err)
		return
	}

	util.Success(ctx, kase)
}

// swagger:model CloseCaseRequest
type CloseCaseRequest struct {
	Resolution string `json:"resolution"`
}

// Close godoc
// @Summary Close a case
// @Description Owner client or assigned advocate
// @Tags cases
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "case id"
// @Param   body body CloseCaseRequest false "optional resolution"
// @Success 200 {object} util.Response{data=model.Case} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /cases/{id}/close [put]
func (c *CaseController) Close(ctx *gin.Context) {
	caller := c.AuthService.GetCurrentAccount(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid case id")
		return
	}

	var req CloseCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	kase, err := c.CaseService.Close(caller, uint(id), req.Resolution)
	if err != nil {
		caseError(ctx, err)
		return
	}

	util.Success(ctx, kase)
}

// UploadDocument godoc
// @Summary Attach a document to a case
// @Tags cases
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "case id"
// @Param   file formData file true "document"
// @Success 201 {object} util.Response{data=model.CaseDocument} "created"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /cases/{id}/documents [post]
func (c *CaseController) UploadDocument(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid case id")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	objectName := fmt.Sprintf("cases/%d/%s%s", id, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), objectName, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	doc, err := c.CaseService.AddDocument(claims.AccountID, claims.Role, uint(id), fileHeader.Filename, url)
	if err != nil {
		caseError(ctx, err)
		return
	}

	util.Created(ctx, doc)
}

// ListDocuments godoc
// @Summary List a case's documents
// @Tags cases
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "case id"
// @Success 200 {object} util.Response{data=[]model.CaseDocument} "success"
// @Failure 403 {object} util.Response "access denied"
// @Failure 404 {object} util.Response "case not found"
// @Router /cases/{id}/documents [get]
func (c *CaseController) ListDocuments(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid case id")
		return
	}

	docs, err := c.CaseService.ListDocuments(claims.AccountID, claims.Role, uint(id))
	if err != nil {
		caseError(ctx, err)
		return
	}

	util.Success(ctx, docs)
}

// caseError maps the service error taxonomy to HTTP codes.
func caseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCaseNotFound), errors.Is(err, util.ErrJuniorNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
