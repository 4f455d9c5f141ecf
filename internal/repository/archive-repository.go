package repository

import (
	"github.com/SundayYogurt/intern_service/internal/domain"
	"gorm.io/gorm"
)

type ArchiveRepository interface {
	Create(rec *domain.AdmissionArchive) error
	FindBySubmissionID(submissionID uint) (*domain.AdmissionArchive, error)
}

type archiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) ArchiveRepository {
	return &archiveRepository{db: db}
}

func (a *archiveRepository) Create(rec *domain.AdmissionArchive) error {
	return a.db.Create(rec).Error
}

func (a *archiveRepository) FindBySubmissionID(submissionID uint) (*domain.AdmissionArchive, error) {
	var rec domain.AdmissionArchive
	if err := a.db.Where("submission_id = ?", submissionID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
