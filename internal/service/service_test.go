package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"legal_aid_backend/internal/config"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/repository"
	"legal_aid_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test so tests can run in
// parallel without sharing state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.Secret = "unit-test-secret-0123456789abcdef-xyz"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Mentorship.GracePeriodDays = 30
	return cfg
}

type testEnv struct {
	db            *gorm.DB
	accountRepo   *repository.AccountRepository
	caseRepo      *repository.CaseRepository
	convRepo      *repository.ConversationRepository
	feedbackRepo  *repository.FeedbackRepository
	auth          *AuthService
	accounts      *AccountService
	cases         *CaseService
	conversations *ConversationService
	feedback      *FeedbackService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	accountRepo := repository.NewAccountRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	convRepo := repository.NewConversationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db, nil)

	conversations := NewConversationService(convRepo, caseRepo)

	return &testEnv{
		db:            db,
		accountRepo:   accountRepo,
		caseRepo:      caseRepo,
		convRepo:      convRepo,
		feedbackRepo:  feedbackRepo,
		auth:          NewAuthService(accountRepo, testConfig()),
		accounts:      NewAccountService(accountRepo),
		cases:         NewCaseService(caseRepo, accountRepo, conversations),
		conversations: conversations,
		feedback:      NewFeedbackService(feedbackRepo, accountRepo, convRepo),
	}
}

func (e *testEnv) createAccount(t *testing.T, role model.AccountRole, email string) *model.Account {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &model.Account{
		FirstName: "Test",
		LastName:  string(role),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, e.accountRepo.Create(account))
	return account
}

// createSupervisedJunior registers a junior already accepted into the
// advocate's community.
func (e *testEnv) createSupervisedJunior(t *testing.T, advocate *model.Account, email string) *model.Account {
	t.Helper()

	junior := e.createAccount(t, model.Junior, email)
	junior.SupervisorID = &advocate.ID
	require.NoError(t, e.accountRepo.Update(junior))
	return junior
}

func (e *testEnv) createCase(t *testing.T, client *model.Account) *model.Case {
	t.Helper()

	kase, err := e.cases.Create(client, &model.Case{
		Title:       "Eviction notice dispute",
		Description: "Client received an eviction notice with two weeks to respond.",
		Category:    "Housing",
		Priority:    model.PriorityMedium,
	}, nil)
	require.NoError(t, err)
	return kase
}
