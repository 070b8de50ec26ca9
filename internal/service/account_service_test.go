package service

import (
	"testing"
	"time"

	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageJuniorAccept(t *testing.T) {
	env := newTestEnv(t)
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createAccount(t, model.Junior, "jun@example.com")

	expiry := time.Now().AddDate(0, 0, 30)
	junior.GracePeriodExpiry = &expiry
	require.NoError(t, env.accountRepo.Update(junior))

	got, err := env.accounts.ManageJunior(advocate.ID, junior.ID, "accept")
	require.NoError(t, err)
	require.NotNil(t, got.SupervisorID)
	assert.Equal(t, advocate.ID, *got.SupervisorID)
	assert.Nil(t, got.GracePeriodExpiry)
	assert.True(t, got.IsActive)

	// Accepting twice changes nothing.
	again, err := env.accounts.ManageJunior(advocate.ID, junior.ID, "accept")
	require.NoError(t, err)
	assert.Equal(t, advocate.ID, *again.SupervisorID)

	stored, err := env.accountRepo.FindByID(junior.ID)
	require.NoError(t, err)
	assert.Equal(t, advocate.ID, *stored.SupervisorID)
	assert.Nil(t, stored.GracePeriodExpiry)
}

func TestManageJuniorRejectKeepsGraceWindowRunning(t *testing.T) {
	env := newTestEnv(t)
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createAccount(t, model.Junior, "jun@example.com")

	expiry := time.Now().AddDate(0, 0, 10)
	junior.GracePeriodExpiry = &expiry
	require.NoError(t, env.accountRepo.Update(junior))

	got, err := env.accounts.ManageJunior(advocate.ID, junior.ID, "reject")
	require.NoError(t, err)
	assert.Nil(t, got)

	stored, err := env.accountRepo.FindByID(junior.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SupervisorID)
	require.NotNil(t, stored.GracePeriodExpiry)
	assert.True(t, stored.IsActive)
}

func TestManageJuniorValidation(t *testing.T) {
	env := newTestEnv(t)
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createAccount(t, model.Junior, "jun@example.com")
	client := env.createAccount(t, model.Client, "cli@example.com")

	_, err := env.accounts.ManageJunior(advocate.ID, junior.ID, "promote")
	assert.ErrorIs(t, err, util.ErrInvalidAction)

	_, err = env.accounts.ManageJunior(advocate.ID, client.ID, "accept")
	assert.ErrorIs(t, err, util.ErrInvalidAccountTypes)

	_, err = env.accounts.ManageJunior(client.ID, junior.ID, "accept")
	assert.ErrorIs(t, err, util.ErrInvalidAccountTypes)

	_, err = env.accounts.ManageJunior(advocate.ID, 9999, "accept")
	assert.ErrorIs(t, err, util.ErrAccountNotFound)
}

func TestCheckGracePeriodExpiredDeactivates(t *testing.T) {
	env := newTestEnv(t)
	junior := env.createAccount(t, model.Junior, "late@example.com")

	expiry := time.Now().Add(-time.Hour)
	junior.GracePeriodExpiry = &expiry
	require.NoError(t, env.accountRepo.Update(junior))

	err := env.accounts.CheckGracePeriod(junior.ID)
	assert.ErrorIs(t, err, util.ErrGracePeriodExpired)

	stored, err := env.accountRepo.FindByID(junior.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// Still rejected on every later request.
	err = env.accounts.CheckGracePeriod(junior.ID)
	assert.ErrorIs(t, err, util.ErrGracePeriodExpired)
}

func TestCheckGracePeriodStillOpen(t *testing.T) {
	env := newTestEnv(t)
	junior := env.createAccount(t, model.Junior, "ontime@example.com")

	expiry := time.Now().Add(24 * time.Hour)
	junior.GracePeriodExpiry = &expiry
	require.NoError(t, env.accountRepo.Update(junior))

	assert.NoError(t, env.accounts.CheckGracePeriod(junior.ID))

	stored, err := env.accountRepo.FindByID(junior.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestCheckGracePeriodSupervisedJuniorExempt(t *testing.T) {
	env := newTestEnv(t)
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "safe@example.com")

	assert.NoError(t, env.accounts.CheckGracePeriod(junior.ID))
}

func TestUpdateProfileSpecializationAdvocateOnly(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")

	bio := "Reachable weekdays."
	got, err := env.accounts.UpdateProfile(client.ID, ProfileUpdate{
		Bio:            &bio,
		Specialization: []string{"Housing"},
	})
	require.NoError(t, err)
	assert.Equal(t, bio, got.Bio)
	assert.Empty(t, got.Specialization)

	got, err = env.accounts.UpdateProfile(advocate.ID, ProfileUpdate{
		Specialization: []string{"Housing", "Immigration"},
	})
	require.NoError(t, err)
	assert.Len(t, got.Specialization, 2)
}

func TestUnsupervisedJuniors(t *testing.T) {
	env := newTestEnv(t)
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	env.createSupervisedJunior(t, advocate, "supervised@example.com")
	loose := env.createAccount(t, model.Junior, "loose@example.com")
	env.createAccount(t, model.Client, "cli@example.com")

	juniors, err := env.accounts.UnsupervisedJuniors()
	require.NoError(t, err)
	require.Len(t, juniors, 1)
	assert.Equal(t, loose.ID, juniors[0].ID)
}
