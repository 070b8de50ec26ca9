package util

import (
	"legal_aid_backend/internal/model"
)

// Case update fields gated per role. Fields missing from a role's set are
// silently ignored when present in an update body, never rejected.
const (
	CaseFieldTitle          = "title"
	CaseFieldDescription    = "description"
	CaseFieldCategory       = "category"
	CaseFieldStatus         = "status"
	CaseFieldPriority       = "priority"
	CaseFieldResolution     = "resolution"
	CaseFieldDeadline       = "deadline"
	CaseFieldAssignedJunior = "assignedJunior"
)

var caseFieldPolicy = map[model.AccountRole]map[string]bool{
	model.Client: {
		CaseFieldTitle:       true,
		CaseFieldDescription: true,
		CaseFieldPriority:    true,
		// Status too, but only to "closed"; the service enforces the value.
		CaseFieldStatus: true,
	},
	model.Advocate: {
		CaseFieldTitle:          true,
		CaseFieldDescription:    true,
		CaseFieldCategory:       true,
		CaseFieldStatus:         true,
		CaseFieldPriority:       true,
		CaseFieldResolution:     true,
		CaseFieldDeadline:       true,
		CaseFieldAssignedJunior: true,
	},
}

// CaseFieldAllowed reports whether the role may write the named case field.
func CaseFieldAllowed(role model.AccountRole, field string) bool {
	return caseFieldPolicy[role][field]
}

// CaseFieldsFor returns the writable case fields for a role; used by tests to
// enumerate the matrix.
func CaseFieldsFor(role model.AccountRole) []string {
	fields := make([]string, 0, len(caseFieldPolicy[role]))
	for f := range caseFieldPolicy[role] {
		fields = append(fields, f)
	}
	return fields
}
