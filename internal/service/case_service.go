package service

import (
	"fmt"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/repository"
	"legal_aid_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// CanAccessCase is the shared membership test: owning client, assigned junior
// or assigned advocate. Conversation and feedback access reuse it.
func CanAccessCase(role model.AccountRole, accountID uint, kase *model.Case) bool {
	switch role {
	case model.Client:
		return kase.ClientID == accountID
	case model.Junior:
		return kase.AssignedJuniorID != nil && *kase.AssignedJuniorID == accountID
	case model.Advocate:
		return kase.AssignedAdvocateID != nil && *kase.AssignedAdvocateID == accountID
	}
	return false
}

// CaseUpdate carries the optional update fields; nil means "not sent".
// Fields a role may not write are ignored, not rejected.
type CaseUpdate struct {
	Title          *string
	Description    *string
	Category       *string
	Status         *string
	Priority       *string
	Resolution     *string
	Deadline       *time.Time
	AssignedJunior *uint
}

type CaseService struct {
	CaseRepo    *repository.CaseRepository
	AccountRepo *repository.AccountRepository
	ConvService *ConversationService
}

func NewCaseService(caseRepo *repository.CaseRepository, accountRepo *repository.AccountRepository, convService *ConversationService) *CaseService {
	return &CaseService{
		CaseRepo:    caseRepo,
		AccountRepo: accountRepo,
		ConvService: convService,
	}
}

// Create opens a new case owned by the calling client. Assigning a junior at
// creation moves the case straight to in-progress, copies the junior's
// supervisor into the advocate slot and provisions the case conversation.
func (s *CaseService) Create(client *model.Account, kase *model.Case, assignedJuniorID *uint) (*model.Case, error) {
	if client.Role != model.Client {
		return nil, util.ErrPermissionDenied
	}

	kase.ClientID = client.ID
	kase.Status = model.CaseOpen

	var junior *model.Account
	if assignedJuniorID != nil {
		j, err := s.AccountRepo.FindByID(*assignedJuniorID)
		if err == nil && j.Role == model.Junior {
			junior = j
			kase.AssignedJuniorID = &j.ID
			kase.AssignedAdvocateID = j.SupervisorID
			kase.Status = model.CaseInProgress
		}
	}

	if err := s.CaseRepo.Create(kase); err != nil {
		return nil, err
	}

	if junior != nil {
		line := fmt.Sprintf("Case %q has been created and assigned to you.", kase.Title)
		if err := s.ConvService.StartAssignmentThread(kase, junior.ID, line); err != nil {
			return nil, err
		}
	}

	return kase, nil
}

// ListForCaller returns the cases visible to the account: clients see their
// own, juniors their assignments, advocates their supervised cases.
func (s *CaseService) ListForCaller(accountID uint, role model.AccountRole) ([]model.Case, error) {
	switch role {
	case model.Client:
		return s.CaseRepo.FindByClient(accountID)
	case model.Junior:
		return s.CaseRepo.FindByAssignedJunior(accountID)
	case model.Advocate:
		return s.CaseRepo.FindByAssignedAdvocate(accountID)
	}
	return nil, util.ErrPermissionDenied
}

func (s *CaseService) Get(accountID uint, role model.AccountRole, caseID uint) (*model.Case, error) {
	kase, err := s.CaseRepo.FindByIDWithRefs(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCaseNotFound
		}
		return nil, err
	}

	if !CanAccessCase(role, accountID, kase) {
		return nil, util.ErrPermissionDenied
	}

	return kase, nil
}

// Update applies the role-gated field policy. Only the owning client or the
// assigned advocate may update at all; within that, each role writes only the
// fields its capability row allows. Reassigning the junior re-derives the
// assigned advocate from the junior's supervisor; the advocate slot is never
// written from a request body.
func (s *CaseService) Update(caller *model.Account, caseID uint, upd CaseUpdate) (*model.Case, error) {
	kase, err := s.CaseRepo.FindByID(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCaseNotFound
		}
		return nil, err
	}

	canUpdate := (caller.Role == model.Client && kase.ClientID == caller.ID) ||
		(caller.Role == model.Advocate && kase.AssignedAdvocateID != nil && *kase.AssignedAdvocateID == caller.ID)
	if !canUpdate {
		return nil, util.ErrPermissionDenied
	}

	role := caller.Role

	if upd.Title != nil && util.CaseFieldAllowed(role, util.CaseFieldTitle) {
		kase.Title = *upd.Title
	}
	if upd.Description != nil && util.CaseFieldAllowed(role, util.CaseFieldDescription) {
		kase.Description = *upd.Description
	}
	if upd.Category != nil && util.CaseFieldAllowed(role, util.CaseFieldCategory) && model.ValidCaseCategory(*upd.Category) {
		kase.Category = *upd.Category
	}
	if upd.Priority != nil && util.CaseFieldAllowed(role, util.CaseFieldPriority) && model.ValidCasePriority(model.CasePriority(*upd.Priority)) {
		kase.Priority = model.CasePriority(*upd.Priority)
	}
	if upd.Resolution != nil && util.CaseFieldAllowed(role, util.CaseFieldResolution) {
		kase.Resolution = *upd.Resolution
	}
	if upd.Deadline != nil && util.CaseFieldAllowed(role, util.CaseFieldDeadline) {
		kase.Deadline = upd.Deadline
	}

	if upd.Status != nil && util.CaseFieldAllowed(role, util.CaseFieldStatus) {
		status := model.CaseStatus(*upd.Status)
		if model.ValidCaseStatus(status) {
			// Clients may only close their own case; any other target value
			// is ignored for them.
			if role != model.Client || status == model.CaseClosed {
				kase.Status = status
			}
		}
	}

	if upd.AssignedJunior != nil && util.CaseFieldAllowed(role, util.CaseFieldAssignedJunior) {
		junior, err := s.AccountRepo.FindByID(*upd.AssignedJunior)
		if err == nil && junior.Role == model.Junior &&
			junior.SupervisorID != nil && *junior.SupervisorID == caller.ID {
			kase.AssignedJuniorID = &junior.ID
			kase.AssignedAdvocateID = junior.SupervisorID
		}
	}

	if err := s.CaseRepo.Save(kase); err != nil {
		return nil, err
	}
	return kase, nil
}

// AssignJunior puts one of the caller's supervisees on the case and brings
// the case conversation in line with the new participant set before
// returning.
func (s *CaseService) AssignJunior(caller *model.Account, caseID, juniorID uint) (*model.Case, error) {
	kase, err := s.CaseRepo.FindByID(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCaseNotFound
		}
		return nil, err
	}

	junior, err := s.AccountRepo.FindByID(juniorID)
	if err != nil || junior.Role != model.Junior {
		return nil, util.ErrJuniorNotFound
	}

	if caller.Role != model.Advocate || junior.SupervisorID == nil || *junior.SupervisorID != caller.ID {
		return nil, util.ErrPermissionDenied
	}

	kase.AssignedJuniorID = &junior.ID
	kase.AssignedAdvocateID = &caller.ID
	kase.Status = model.CaseInProgress

	if err := s.CaseRepo.Save(kase); err != nil {
		return nil, err
	}

	if err := s.ConvService.SyncCaseParticipants(kase, "Junior legal assistant assigned to the case."); err != nil {
		return nil, err
	}

	return kase, nil
}

// Close sets the case to closed; only the owning client or the assigned
// advocate may do it.
func (s *CaseService) Close(caller *model.Account, caseID uint, resolution string) (*model.Case, error) {
	kase, err := s.CaseRepo.FindByID(caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCaseNotFound
		}
		return nil, err
	}

	switch caller.Role {
	case model.Client:
		if kase.ClientID != caller.ID {
			return nil, util.ErrPermissionDenied
		}
	case model.Advocate:
		if kase.AssignedAdvocateID == nil || *kase.AssignedAdvocateID != caller.ID {
			return nil, util.ErrPermissionDenied
		}
	default:
		return nil, util.ErrPermissionDenied
	}

	kase.Status = model.CaseClosed
	if resolution != "" {
		kase.Resolution = resolution
	}

	if err := s.CaseRepo.Save(kase); err != nil {
		return nil, err
	}
	return kase, nil
}

// AddDocument records an uploaded file against the case; access follows the
// same membership rule as reads.
func (s *CaseService) AddDocument(accountID uint, role model.AccountRole, caseID uint, name, url string) (*model.CaseDocument, error) {
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

	doc := &model.CaseDocument{
		CaseID:     kase.ID,
		Name:       name,
		URL:        url,
		UploadedAt: time.Now(),
	}
	if err := s.CaseRepo.AddDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *CaseService) ListDocuments(accountID uint, role model.AccountRole, caseID uint) ([]model.CaseDocument, error) {
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

	return s.CaseRepo.FindDocuments(caseID)
}
