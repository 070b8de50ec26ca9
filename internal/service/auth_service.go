package service

import (
	"legal_aid_backend/internal/config"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/repository"
	"legal_aid_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	AccountRepo *repository.AccountRepository
	Cfg         *config.Config
}

func NewAuthService(accountRepo *repository.AccountRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		AccountRepo: accountRepo,
		Cfg:         cfg,
	}
}

// Register creates the account, hashes the password and, for juniors, starts
// the supervision grace window.
func (s *AuthService) Register(account *model.Account) error {
	_, err := s.AccountRepo.FindByEmail(account.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hashedPassword)

	// Specialization and bar number only make sense for advocates.
	if account.Role != model.Advocate {
		account.Specialization = nil
		account.BarNumber = ""
	}

	if account.Role == model.Junior {
		expiry := time.Now().AddDate(0, 0, s.gracePeriodDays())
		account.GracePeriodExpiry = &expiry
	}

	account.IsActive = true
	account.LastActive = time.Now()

	return s.AccountRepo.Create(account)
}

func (s *AuthService) Login(email, password string) (string, *model.Account, error) {
	account, err := s.AccountRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(account, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func (s *AuthService) GetCurrentAccount(c *gin.Context) *model.Account {
	claims := util.GetAccountFromContext(c)
	if claims == nil {
		return nil
	}

	account, err := s.AccountRepo.FindByID(claims.AccountID)
	if err != nil {
		return nil
	}
	return account
}

// IssueToken signs a JWT for a freshly registered account.
func (s *AuthService) IssueToken(account *model.Account) (string, error) {
	return util.GenerateJWT(account, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) gracePeriodDays() int {
	days := s.Cfg.Mentorship.GracePeriodDays
	if days <= 0 {
		days = 30
	}
	return days
}
