package repository

import (
	"github.com/SundayYogurt/intern_service/internal/domain"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	FindByID(id uint) (*domain.FormSubmission, error)
	Save(sub *domain.FormSubmission) error
	ListPending(limit, offset int) ([]domain.FormSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (s *submissionRepository) FindByID(id uint) (*domain.FormSubmission, error) {
	var sub domain.FormSubmission
	err := s.db.
		Preload("Form.Fields").
		First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *submissionRepository) Save(sub *domain.FormSubmission) error {
	return s.db.Save(sub).Error
}

func (s *submissionRepository) ListPending(limit, offset int) ([]domain.FormSubmission, error) {
	var subs []domain.FormSubmission

	err := s.db.
		Preload("Form").
		Where("status = ?", domain.SubmissionStatusPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
