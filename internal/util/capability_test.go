package util

import (
	"testing"

	"legal_aid_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCaseFieldPolicy(t *testing.T) {
	assert.True(t, CaseFieldAllowed(model.Client, CaseFieldTitle))
	assert.True(t, CaseFieldAllowed(model.Client, CaseFieldStatus))
	assert.False(t, CaseFieldAllowed(model.Client, CaseFieldResolution))
	assert.False(t, CaseFieldAllowed(model.Client, CaseFieldAssignedJunior))

	assert.True(t, CaseFieldAllowed(model.Advocate, CaseFieldResolution))
	assert.True(t, CaseFieldAllowed(model.Advocate, CaseFieldAssignedJunior))

	// Juniors have no write access to case fields at all.
	assert.Empty(t, CaseFieldsFor(model.Junior))
	for _, f := range CaseFieldsFor(model.Advocate) {
		assert.True(t, CaseFieldAllowed(model.Advocate, f))
	}

	assert.ElementsMatch(t,
		[]string{CaseFieldTitle, CaseFieldDescription, CaseFieldPriority, CaseFieldStatus},
		CaseFieldsFor(model.Client))
}
