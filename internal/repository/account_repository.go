package repository

import (
	"legal_aid_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) Create(account *model.Account) error {
	return r.DB.Create(account).Error
}

func (r *AccountRepository) FindByID(id uint) (*model.Account, error) {
	var account model.Account
	err := r.DB.First(&account, id).Error
	return &account, err
}

func (r *AccountRepository) FindByEmail(email string) (*model.Account, error) {
	var account model.Account
	err := r.DB.Where("email = ?", email).First(&account).Error
	return &account, err
}

func (r *AccountRepository) Update(account *model.Account) error {
	return r.DB.Save(account).Error
}

func (r *AccountRepository) UpdateLastActive(accountID uint) error {
	return r.DB.Model(&model.Account{}).
		Where("id = ?", accountID).
		Update("last_active", time.Now()).
		Error
}

// FindUnsupervisedJuniors lists juniors still looking for an advocate.
func (r *AccountRepository) FindUnsupervisedJuniors() ([]model.Account, error) {
	var juniors []model.Account
	err := r.DB.
		Where("role = ? AND supervisor_id IS NULL", model.Junior).
		Order("created_at ASC").
		Find(&juniors).Error
	return juniors, err
}

func (r *AccountRepository) FindSupervisees(advocateID uint) ([]model.Account, error) {
	var juniors []model.Account
	err := r.DB.
		Where("supervisor_id = ?", advocateID).
		Order("created_at ASC").
		Find(&juniors).Error
	return juniors, err
}

func (r *AccountRepository) FindAdvocateWithSupervisees(id uint) (*model.Account, error) {
	var advocate model.Account
	err := r.DB.Preload("Supervisees").First(&advocate, id).Error
	return &advocate, err
}
