package service

import (
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/repository"
	"legal_aid_backend/internal/util"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileUpdate carries the optional profile fields; nil means "keep".
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Bio            *string
	Location       *string
	Specialization []string
}

type AccountService struct {
	AccountRepo *repository.AccountRepository
}

func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{AccountRepo: accountRepo}
}

func (s *AccountService) GetByID(id uint) (*model.Account, error) {
	account, err := s.AccountRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAccountNotFound
	}
	return account, err
}

func (s *AccountService) UpdateProfile(accountID uint, upd ProfileUpdate) (*model.Account, error) {
	account, err := s.AccountRepo.FindByID(accountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAccountNotFound
		}
		return nil, err
	}

	if upd.FirstName != nil {
		account.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		account.LastName = *upd.LastName
	}
	if upd.Bio != nil {
		account.Bio = *upd.Bio
	}
	if upd.Location != nil {
		account.Location = *upd.Location
	}
	if upd.Specialization != nil && account.Role == model.Advocate {
		account.Specialization = datatypes.NewJSONSlice(upd.Specialization)
	}

	if err := s.AccountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) UnsupervisedJuniors() ([]model.Account, error) {
	return s.AccountRepo.FindUnsupervisedJuniors()
}

func (s *AccountService) SupervisedJuniors(advocateID uint) ([]model.Account, error) {
	return s.AccountRepo.FindSupervisees(advocateID)
}

// ManageJunior accepts or rejects a junior's request to join the advocate's
// community. Accepting links the supervision, clears the grace window and
// reactivates the account; it is idempotent. Rejecting leaves the junior
// unsupervised so the grace period keeps running.
func (s *AccountService) ManageJunior(advocateID, juniorID uint, action string) (*model.Account, error) {
	junior, err := s.AccountRepo.FindByID(juniorID)
	if err != nil {
		return nil, util.ErrAccountNotFound
	}
	advocate, err := s.AccountRepo.FindByID(advocateID)
	if err != nil {
		return nil, util.ErrAccountNotFound
	}

	if junior.Role != model.Junior || advocate.Role != model.Advocate {
		return nil, util.ErrInvalidAccountTypes
	}

	switch action {
	case "accept":
		junior.SupervisorID = &advocate.ID
		junior.GracePeriodExpiry = nil
		junior.IsActive = true
		if err := s.AccountRepo.Update(junior); err != nil {
			return nil, err
		}
		return junior, nil
	case "reject":
		return nil, nil
	default:
		return nil, util.ErrInvalidAction
	}
}

func (s *AccountService) AdvocateProfile(id uint) (*model.Account, error) {
	advocate, err := s.AccountRepo.FindAdvocateWithSupervisees(id)
	if err != nil || advocate.Role != model.Advocate {
		return nil, util.ErrAdvocateNotFound
	}
	return advocate, nil
}

// CheckGracePeriod deactivates an unsupervised junior whose window lapsed and
// rejects the request. Runs on every authenticated junior request.
func (s *AccountService) CheckGracePeriod(accountID uint) error {
	account, err := s.AccountRepo.FindByID(accountID)
	if err != nil {
		return err
	}

	if account.Role != model.Junior {
		return nil
	}

	if account.SupervisorID == nil && account.GracePeriodExpiry != nil && time.Now().After(*account.GracePeriodExpiry) {
		account.IsActive = false
		if err := s.AccountRepo.Update(account); err != nil {
			return err
		}
		return util.ErrGracePeriodExpired
	}

	return nil
}
