package model

import (
	"time"

	"gorm.io/datatypes"
)

type AccountRole string

const (
	Client   AccountRole = "client"
	Junior   AccountRole = "junior"
	Advocate AccountRole = "advocate"
)

func ValidRole(r AccountRole) bool {
	switch r {
	case Client, Junior, Advocate:
		return true
	}
	return false
}

// Account is a marketplace participant: a client posting cases, a junior
// legal assistant, or a senior advocate supervising juniors.
// swagger:model Account
type Account struct {
	BaseModel
	FirstName      string                      `gorm:"size:100;not null" json:"firstName"`
	LastName       string                      `gorm:"size:100;not null" json:"lastName"`
	Email          string                      `gorm:"size:100;unique;not null" json:"email"`
	Password       string                      `gorm:"size:100;not null" json:"-"`
	Role           AccountRole                 `gorm:"type:varchar(20);not null;index" json:"role"`
	ProfilePicture string                      `gorm:"size:255" json:"profilePicture"`
	Bio            string                      `gorm:"type:text" json:"bio"`
	Location       string                      `gorm:"size:255" json:"location"`
	Specialization datatypes.JSONSlice[string] `json:"specialization"` // advocates only
	BarNumber      string                      `gorm:"size:50" json:"barNumber"` // advocates only

	// Supervision link. A junior has at most one supervisor; an advocate's
	// supervisees are the juniors pointing back at it.
	SupervisorID *uint     `gorm:"index" json:"supervisorId"`
	Supervisor   *Account  `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Supervisees  []Account `gorm:"foreignKey:SupervisorID" json:"supervisees,omitempty"`

	IsActive bool `gorm:"default:true" json:"isActive"`
	// Set at registration for juniors; cleared once a supervisor accepts them.
	GracePeriodExpiry *time.Time `json:"gracePeriodExpiry"`
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	LastActive        time.Time  `json:"lastActive"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
