package service

import (
	"testing"

	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedbackFixture wires up an advocate, its junior, a client case assigned to
// the junior and the case conversation feedback attaches to.
type feedbackFixture struct {
	env      *testEnv
	client   *model.Account
	advocate *model.Account
	junior   *model.Account
	kase     *model.Case
	conv     *model.Conversation
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()

	env := newTestEnv(t)
	client := env.createAccount(t, model.Client, "cli@example.com")
	advocate := env.createAccount(t, model.Advocate, "adv@example.com")
	junior := env.createSupervisedJunior(t, advocate, "jun@example.com")

	kase := env.createCase(t, client)
	_, err := env.cases.AssignJunior(advocate, kase.ID, junior.ID)
	require.NoError(t, err)

	conv, err := env.convRepo.FindByCase(kase.ID)
	require.NoError(t, err)

	return &feedbackFixture{
		env:      env,
		client:   client,
		advocate: advocate,
		junior:   junior,
		kase:     kase,
		conv:     conv,
	}
}

func (f *feedbackFixture) upsert(t *testing.T, upd FeedbackUpsert) *model.Feedback {
	t.Helper()

	upd.InteractionID = f.conv.ID
	upd.JuniorID = f.junior.ID
	upd.CaseID = f.kase.ID
	fb, err := f.env.feedback.Upsert(f.advocate, upd)
	require.NoError(t, err)
	return fb
}

func reaction(t model.ReactionType) *model.ReactionType {
	return &t
}

func TestUpsertRequiresSupervision(t *testing.T) {
	f := newFeedbackFixture(t)
	otherAdvocate := f.env.createAccount(t, model.Advocate, "adv2@example.com")

	_, err := f.env.feedback.Upsert(otherAdvocate, FeedbackUpsert{
		InteractionID: f.conv.ID,
		JuniorID:      f.junior.ID,
		CaseID:        f.kase.ID,
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.env.feedback.Upsert(f.client, FeedbackUpsert{
		InteractionID: f.conv.ID,
		JuniorID:      f.junior.ID,
		CaseID:        f.kase.ID,
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestUpsertUnknownInteraction(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.env.feedback.Upsert(f.advocate, FeedbackUpsert{
		InteractionID: 9999,
		JuniorID:      f.junior.ID,
		CaseID:        f.kase.ID,
	})
	assert.ErrorIs(t, err, util.ErrInteractionNotFound)
}

func TestUpsertReusesSingleEntry(t *testing.T) {
	f := newFeedbackFixture(t)

	first := f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionThumbsUp)})
	second := f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionHeart)})
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.env.db.Model(&model.Feedback{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReactionToggle(t *testing.T) {
	f := newFeedbackFixture(t)

	fb := f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionThumbsUp)})
	assert.Equal(t, 1, fb.ThumbsUpCount)

	// The same reviewer reacting again withdraws the reaction.
	fb = f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionThumbsUp)})
	assert.Equal(t, 0, fb.ThumbsUpCount)

	// And a third time puts it back.
	fb = f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionThumbsUp)})
	assert.Equal(t, 1, fb.ThumbsUpCount)

	has, err := f.env.feedbackRepo.HasReaction(fb.ID, model.ReactionThumbsUp, f.advocate.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// Other reaction types count independently.
	fb = f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionBook)})
	assert.Equal(t, 1, fb.ThumbsUpCount)
	assert.Equal(t, 1, fb.BookCount)
	assert.Equal(t, 0, fb.HeartCount)
}

func TestUpsertPartialUpdatesKeepPriorValues(t *testing.T) {
	f := newFeedbackFixture(t)

	comment := "Strong drafting, cite the statute next time."
	fb := f.upsert(t, FeedbackUpsert{
		Comment:          &comment,
		ImprovementAreas: []string{"citations"},
	})
	assert.Equal(t, comment, fb.Comment)
	assert.Len(t, fb.ImprovementAreas, 1)

	// A reaction-only follow-up leaves the comment and lists alone.
	fb = f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionHeart)})
	assert.Equal(t, comment, fb.Comment)
	assert.Len(t, fb.ImprovementAreas, 1)

	// Providing a list overwrites it wholesale.
	fb = f.upsert(t, FeedbackUpsert{
		ImprovementAreas:   []string{"citations", "deadlines"},
		RecommendedReading: []string{"Local tenancy handbook"},
	})
	assert.Len(t, fb.ImprovementAreas, 2)
	assert.Len(t, fb.RecommendedReading, 1)
}

func TestSummaryAggregates(t *testing.T) {
	f := newFeedbackFixture(t)

	// Empty ledger reads as zeros, not NaN.
	summary, err := f.env.feedback.Summary(f.advocate, f.junior.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalFeedback)
	assert.Zero(t, summary.AverageReactions)

	f.upsert(t, FeedbackUpsert{
		ReactionType:     reaction(model.ReactionThumbsUp),
		ImprovementAreas: []string{"citations", "deadlines"},
	})

	// A second interaction: another case handled by the same junior.
	otherCase, err := f.env.cases.Create(f.client, &model.Case{
		Title:       "Benefits appeal",
		Description: "Denied disability benefits.",
		Category:    "Disability Rights",
	}, &f.junior.ID)
	require.NoError(t, err)
	otherConv, err := f.env.convRepo.FindByCase(otherCase.ID)
	require.NoError(t, err)

	_, err = f.env.feedback.Upsert(f.advocate, FeedbackUpsert{
		InteractionID:      otherConv.ID,
		JuniorID:           f.junior.ID,
		CaseID:             otherCase.ID,
		ReactionType:       reaction(model.ReactionHeart),
		ImprovementAreas:   []string{"citations"},
		RecommendedReading: []string{"Appeals manual"},
	})
	require.NoError(t, err)

	summary, err = f.env.feedback.Summary(f.advocate, f.junior.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalFeedback)
	assert.Equal(t, 1, summary.ThumbsUpCount)
	assert.Equal(t, 1, summary.HeartCount)
	assert.Equal(t, 0, summary.BookCount)
	assert.InDelta(t, 1.0, summary.AverageReactions, 0.001)
	assert.Equal(t, 2, summary.CommonImprovementAreas["citations"])
	assert.Equal(t, 1, summary.CommonImprovementAreas["deadlines"])
	assert.Equal(t, 1, summary.CommonRecommendedReading["Appeals manual"])
}

func TestListForInteractionAccess(t *testing.T) {
	f := newFeedbackFixture(t)
	stranger := f.env.createAccount(t, model.Client, "cli2@example.com")

	f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionThumbsUp)})

	// Participants of the conversation can read the feedback on it.
	entries, err := f.env.feedback.ListForInteraction(f.client, f.conv.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// So can the advocate supervising a participant.
	entries, err = f.env.feedback.ListForInteraction(f.advocate, f.conv.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = f.env.feedback.ListForInteraction(stranger, f.conv.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.env.feedback.ListForInteraction(f.client, 9999)
	assert.ErrorIs(t, err, util.ErrInteractionNotFound)
}

func TestListForJuniorSupervisedOnly(t *testing.T) {
	f := newFeedbackFixture(t)
	otherAdvocate := f.env.createAccount(t, model.Advocate, "adv2@example.com")

	f.upsert(t, FeedbackUpsert{ReactionType: reaction(model.ReactionBook)})

	entries, err := f.env.feedback.ListForJunior(f.advocate, f.junior.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = f.env.feedback.ListForJunior(otherAdvocate, f.junior.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.env.feedback.Summary(otherAdvocate, f.junior.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
