package service

import (
	"testing"
	"time"

	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndStartsGraceWindow(t *testing.T) {
	env := newTestEnv(t)

	account := &model.Account{
		FirstName: "June",
		LastName:  "Ko",
		Email:     "june@example.com",
		Password:  "plaintext-password",
		Role:      model.Junior,
	}
	require.NoError(t, env.auth.Register(account))

	assert.NotEqual(t, "plaintext-password", account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("plaintext-password")))

	assert.True(t, account.IsActive)
	require.NotNil(t, account.GracePeriodExpiry)
	expected := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, expected, *account.GracePeriodExpiry, time.Minute)
}

func TestRegisterClientGetsNoGraceWindow(t *testing.T) {
	env := newTestEnv(t)

	account := &model.Account{
		FirstName: "Cleo",
		LastName:  "Park",
		Email:     "cleo@example.com",
		Password:  "plaintext-password",
		Role:      model.Client,
	}
	require.NoError(t, env.auth.Register(account))
	assert.Nil(t, account.GracePeriodExpiry)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createAccount(t, model.Client, "taken@example.com")

	err := env.auth.Register(&model.Account{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "taken@example.com",
		Password:  "password123",
		Role:      model.Client,
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterStripsAdvocateOnlyFields(t *testing.T) {
	env := newTestEnv(t)

	client := &model.Account{
		FirstName:      "Cleo",
		LastName:       "Park",
		Email:          "cleo2@example.com",
		Password:       "password123",
		Role:           model.Client,
		BarNumber:      "BAR-1234",
		Specialization: []string{"Housing"},
	}
	require.NoError(t, env.auth.Register(client))
	assert.Empty(t, client.BarNumber)
	assert.Empty(t, client.Specialization)

	advocate := &model.Account{
		FirstName:      "Ada",
		LastName:       "Velez",
		Email:          "ada@example.com",
		Password:       "password123",
		Role:           model.Advocate,
		BarNumber:      "BAR-5678",
		Specialization: []string{"Immigration", "Housing"},
	}
	require.NoError(t, env.auth.Register(advocate))
	assert.Equal(t, "BAR-5678", advocate.BarNumber)
	assert.Len(t, advocate.Specialization, 2)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	account := &model.Account{
		FirstName: "June",
		LastName:  "Ko",
		Email:     "login@example.com",
		Password:  "correct-horse",
		Role:      model.Client,
	}
	require.NoError(t, env.auth.Register(account))

	token, got, err := env.auth.Login("login@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, account.ID, got.ID)

	claims, err := util.ParseJWT(token, env.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, model.Client, claims.Role)

	_, _, err = env.auth.Login("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = env.auth.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
