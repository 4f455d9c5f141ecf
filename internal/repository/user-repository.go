package repository

import (
	"errors"
	"log"
	"strings"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	SaveUser(user *domain.User) error

	// FindByEmails คืน account ทุกสถานะที่อีเมลตรงกับ batch (case-insensitive)
	FindByEmails(emails []string) ([]domain.User, error)

	// CreateBatchTx สร้าง account + profile + role ทั้ง batch ใน transaction เดียว
	CreateBatchTx(users []*domain.User, profiles []*domain.InternProfile, roleID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, errors.New("failed to create user")
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		log.Printf("find user by email error: %v", err)
		return nil, errors.New("failed to find user by email")
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		log.Printf("find user by id error: %v", err)
		return nil, errors.New("failed to find user by ID")
	}

	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return errors.New("failed to save user")
	}
	return nil
}

func (r *userRepository) FindByEmails(emails []string) ([]domain.User, error) {
	var users []domain.User
	if len(emails) == 0 {
		return users, nil
	}

	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(e)))
	}

	if err := r.db.Where("LOWER(email) IN ?", lowered).Find(&users).Error; err != nil {
		log.Printf("find users by emails error: %v", err)
		return nil, errors.New("failed to find users by emails")
	}
	return users, nil
}

func (r *userRepository) CreateBatchTx(users []*domain.User, profiles []*domain.InternProfile, roleID uint) error {
	if len(users) == 0 {
		return nil
	}
	if len(profiles) != len(users) {
		return errors.New("users and profiles length mismatch")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		rows := make([]domain.UserRole, 0, len(users))
		for i, u := range users {
			if profiles[i] != nil {
				profiles[i].UserID = u.ID
			}
			rows = append(rows, domain.UserRole{UserID: u.ID, RoleID: roleID})
		}

		keep := make([]*domain.InternProfile, 0, len(profiles))
		for _, p := range profiles {
			if p != nil {
				keep = append(keep, p)
			}
		}
		if len(keep) > 0 {
			if err := tx.Create(&keep).Error; err != nil {
				return err
			}
		}

		return tx.Create(&rows).Error
	})
}
