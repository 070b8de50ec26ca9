package service

import (
	"testing"
	"time"

	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCaseClientOnly(t *testing.T) {
	env := newTestEnv(t)
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")

	_, err := env.cases.Create(advocate, &model.Case{
		Title:       "Not allowed",
		Description: "Advocates do not open cases.",
		Category:    "Housing",
	}, nil)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestCreateCaseOpensUnassigned(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")

	kase := env.createCase(t, client)
	assert.Equal(t, model.CaseOpen, kase.Status)
	assert.Equal(t, client.ID, kase.ClientID)
	assert.Nil(t, kase.AssignedJuniorID)
	assert.Nil(t, kase.AssignedAdvocateID)
}

func TestCreateCaseWithJuniorDerivesAdvocateAndStartsThread(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")

	kase, err := env.cases.Create(client, &model.Case{
		Title:       "Wage claim",
		Description: "Unpaid overtime for three months.",
		Category:    "Employment",
	}, &junior.ID)
	require.NoError(t, err)

	assert.Equal(t, model.CaseInProgress, kase.Status)
	require.NotNil(t, kase.AssignedJuniorID)
	assert.Equal(t, junior.ID, *kase.AssignedJuniorID)
	require.NotNil(t, kase.AssignedAdvocateID)
	assert.Equal(t, advocate.ID, *kase.AssignedAdvocateID)

	conv, err := env.convRepo.FindByCaseWithMessages(kase.ID)
	require.NoError(t, err)
	assert.Len(t, conv.Participants, 2)
	require.Len(t, conv.Messages, 1)
	assert.Nil(t, conv.Messages[0].SenderID)
	assert.Contains(t, conv.Messages[0].Content, "Wage claim")
}

func TestCaseAccessMatrix(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	otherClient := env.createAccount(t, model.Client, "cli2@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	otherAdvocate := env.createAccount(t, model.Advocate, "adv2@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")
	otherJunior := env.createSupervisedJunior(t, advocate, "jun2@example.com")

	kase := env.createCase(t, client)
	_, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	require.NoError(t, err)

	cases := []struct {
		name    string
		account *model.Account
		allowed bool
	}{
		{"owner client", client, true},
		{"other client", otherClient, false},
		{"assigned junior", junior, true},
		{"other junior", otherJunior, false},
		{"assigned advocate", advocate, true},
		{"other advocate", otherAdvocate, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.cases.Get(tc.account.ID, tc.account.Role, kase.ID)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, util.ErrPermissionDenied)
			}
		})
	}
}

func TestUpdateFieldPolicy(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")

	kase := env.createCase(t, client)
	_, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	require.NoError(t, err)

	// Client edits title and priority; the resolution write is silently
	// dropped because the field is advocate-only.
	title := "Amended eviction dispute"
	priority := "high"
	resolution := "should be ignored"
	got, err := env.cases.Update(client, kase.ID, CaseUpdate{
		Title:      &title,
		Priority:   &priority,
		Resolution: &resolution,
	})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Empty(t, got.Resolution)

	// A client may only move status to closed; other targets are ignored.
	review := "review"
	got, err = env.cases.Update(client, kase.ID, CaseUpdate{Status: &review})
	require.NoError(t, err)
	assert.Equal(t, model.CaseInProgress, got.Status)

	// The advocate writes the advocate-only fields.
	deadline := time.Now().AddDate(0, 1, 0)
	realResolution := "Settled with the landlord."
	got, err = env.cases.Update(advocate, kase.ID, CaseUpdate{
		Status:     &review,
		Resolution: &realResolution,
		Deadline:   &deadline,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CaseReview, got.Status)
	assert.Equal(t, realResolution, got.Resolution)
	require.NotNil(t, got.Deadline)

	closed := "closed"
	got, err = env.cases.Update(client, kase.ID, CaseUpdate{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, model.CaseClosed, got.Status)
}

func TestUpdateDeniedForNonParticipants(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	stranger := env.createAccount(t, model.Client, "cli2@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")

	kase := env.createCase(t, client)

	title := "hijacked"
	_, err := env.cases.Update(stranger, kase.ID, CaseUpdate{Title: &title})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Unassigned advocates cannot update either.
	_, err = env.cases.Update(advocate, kase.ID, CaseUpdate{Title: &title})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestAssignJuniorRequiresSupervision(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	otherAdvocate := env.createAccount(t, model.Advocate, "adv2@example.com")
	junior := env.createSupervisedJunior(t, otherAdvocate, "jun@example.com")

	kase := env.createCase(t, client)

	_, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Denied assignment leaves the case untouched.
	stored, err := env.caseRepo.FindByID(kase.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AssignedJuniorID)
	assert.Nil(t, stored.AssignedAdvocateID)
	assert.Equal(t, model.CaseOpen, stored.Status)
}

func TestAssignJuniorSyncsConversation(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")

	kase := env.createCase(t, client)

	// The client opens the thread before anyone is assigned.
	_, err := env.conversations.GetForCase(client.ID, model.Client, kase.ID)
	require.NoError(t, err)

	got, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CaseInProgress, got.Status)
	assert.Equal(t, advocate.ID, *got.AssignedAdvocateID)

	// By the time the assignment call returns, the thread already carries
	// all three participants and the system line.
	conv, err := env.convRepo.FindByCaseWithMessages(kase.ID)
	require.NoError(t, err)
	assert.Len(t, conv.Participants, 3)
	require.NotEmpty(t, conv.Messages)
	last := conv.Messages[len(conv.Messages)-1]
	assert.Nil(t, last.SenderID)
	assert.Contains(t, last.Content, "assigned")
}

func TestCloseCase(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")
	stranger := env.createAccount(t, model.Client, "cli2@example.com")

	kase := env.createCase(t, client)
	_, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	require.NoError(t, err)

	_, err = env.cases.Close(stranger, kase.ID, "")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.cases.Close(junior, kase.ID, "")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	got, err := env.cases.Close(advocate, kase.ID, "Resolved in mediation.")
	require.NoError(t, err)
	assert.Equal(t, model.CaseClosed, got.Status)
	assert.Equal(t, "Resolved in mediation.", got.Resolution)
}

func TestCaseDocuments(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	stranger := env.createAccount(t, model.Client, "cli2@example.com")

	kase := env.createCase(t, client)

	doc, err := env.cases.AddDocument(client.ID, model.Client, kase.ID, "lease.pdf", "/uploads/cases/1/lease.pdf")
	require.NoError(t, err)
	assert.Equal(t, kase.ID, doc.CaseID)

	_, err = env.cases.AddDocument(stranger.ID, model.Client, kase.ID, "sneaky.pdf", "/uploads/x.pdf")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	docs, err := env.cases.ListDocuments(client.ID, model.Client, kase.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "lease.pdf", docs[0].Name)

	_, err = env.cases.ListDocuments(stranger.ID, model.Client, kase.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestListForCaller(t *testing.T) {
	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	otherClient := env.createAccount(t, model.Client, "cli2@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")

	kase := env.createCase(t, client)
	env.createCase(t, otherClient)
	_, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	require.NoError(t, err)

	mine, err := env.cases.ListForCaller(client.ID, model.Client)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, kase.ID, mine[0].ID)

	assigned, err := env.cases.ListForCaller(junior.ID, model.Junior)
	require.NoError(t, err)
	require.Len(t, assigned, 1)

	supervised, err := env.cases.ListForCaller(advocate.ID, model.Advocate)
	require.NoError(t, err)
	require.Len(t, supervised, 1)
}
