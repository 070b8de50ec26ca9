package repository

import (
	"legal_aid_backend/internal/model"

	"gorm.io/gorm"
)

type CaseRepository struct {
	DB *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{DB: db}
}

func (r *CaseRepository) Create(kase *model.Case) error {
	return r.DB.Create(kase).Error
}

func (r *CaseRepository) FindByID(id uint) (*model.Case, error) {
	var kase model.Case
	err := r.DB.First(&kase, id).Error
	return &kase, err
}

// FindByIDWithRefs loads a case with its client and assignees for responses.
func (r *CaseRepository) FindByIDWithRefs(id uint) (*model.Case, error) {
	var kase model.Case
	err := r.DB.
		Preload("Client").
		Preload("AssignedJunior").
		Preload("AssignedAdvocate").
		First(&kase, id).Error
	return &kase, err
}

func (r *CaseRepository) Save(kase *model.Case) error {
	return r.DB.Save(kase).Error
}

func (r *CaseRepository) FindByClient(clientID uint) ([]model.Case, error) {
	var cases []model.Case
	err := r.DB.
		Preload("AssignedJunior").
		Preload("AssignedAdvocate").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) FindByAssignedJunior(juniorID uint) ([]model.Case, error) {
	var cases []model.Case
	err := r.DB.
		Preload("Client").
		Preload("AssignedAdvocate").
		Where("assigned_junior_id = ?", juniorID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) FindByAssignedAdvocate(advocateID uint) ([]model.Case, error) {
	var cases []model.Case
	err := r.DB.
		Preload("Client").
		Preload("AssignedJunior").
		Where("assigned_advocate_id = ?", advocateID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) AddDocument(doc *model.CaseDocument) error {
	return r.DB.Create(doc).Error
}

func (r *CaseRepository) FindDocuments(caseID uint) ([]model.CaseDocument, error) {
	var docs []model.CaseDocument
	err := r.DB.
		Where("case_id = ?", caseID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}
