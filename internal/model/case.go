package model

import (
	"time"
)

type CaseStatus string

const (
	CaseOpen       CaseStatus = "open"
	CaseInProgress CaseStatus = "in-progress"
	CaseReview     CaseStatus = "review"
	CaseClosed     CaseStatus = "closed"
)

func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseOpen, CaseInProgress, CaseReview, CaseClosed:
		return true
	}
	return false
}

type CasePriority string

const (
	PriorityLow    CasePriority = "low"
	PriorityMedium CasePriority = "medium"
	PriorityHigh   CasePriority = "high"
)

func ValidCasePriority(p CasePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CaseCategories is the closed set of legal practice areas a case can be filed under.
var CaseCategories = []string{
	"Family Law", "Criminal Law", "Civil Rights", "Immigration",
	"Housing", "Employment", "Consumer Rights", "Elder Law",
	"Disability Rights", "Environmental Law", "Other",
}

func ValidCaseCategory(c string) bool {
	for _, cat := range CaseCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Case is a client's legal matter tracked through its status lifecycle.
// swagger:model Case
type Case struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    string       `gorm:"type:varchar(50);not null" json:"category"`
	Status      CaseStatus   `gorm:"type:varchar(20);default:'open';index" json:"status"`
	Priority    CasePriority `gorm:"type:varchar(10);default:'medium'" json:"priority"`

	ClientID uint     `gorm:"index;not null" json:"clientId"`
	Client   *Account `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	AssignedJuniorID *uint    `gorm:"index" json:"assignedJuniorId"`
	AssignedJunior   *Account `gorm:"foreignKey:AssignedJuniorID" json:"assignedJunior,omitempty"`
	// Always the supervisor of AssignedJunior at the time of assignment.
	AssignedAdvocateID *uint    `gorm:"index" json:"assignedAdvocateId"`
	AssignedAdvocate   *Account `gorm:"foreignKey:AssignedAdvocateID" json:"assignedAdvocate,omitempty"`

	Resolution string         `gorm:"type:text" json:"resolution"`
	Deadline   *time.Time     `json:"deadline"`
	Documents  []CaseDocument `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}

func (Case) TableName() string {
	return "cases"
}

// CaseDocument records a file attached to a case; the bytes live in the
// configured storage backend.
type CaseDocument struct {
	BaseModel
	CaseID     uint      `gorm:"index;not null" json:"caseId"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	URL        string    `gorm:"size:255;not null" json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (CaseDocument) TableName() string {
	return "case_documents"
}
